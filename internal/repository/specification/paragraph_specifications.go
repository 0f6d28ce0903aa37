package specification

import "gorm.io/gorm"

// SectionTitlePrefix matches paragraphs whose section title starts with the
// given prefix, e.g. "3." for an explicit "section 3" citation.
type SectionTitlePrefix struct {
	Prefix string
}

func (s SectionTitlePrefix) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("section_title LIKE ?", s.Prefix+"%")
}
