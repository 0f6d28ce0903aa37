package specification

import "gorm.io/gorm"

// Specification is a composable query predicate applied to a gorm builder.
// Repositories accept a variadic list of these so call sites can express
// filters, ordering and limits without the repository knowing about them.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// ApplyAll chains every specification onto the builder in order.
func ApplyAll(db *gorm.DB, specs ...Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}
