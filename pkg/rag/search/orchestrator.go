package search

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"doc-collab-be/internal/apperrors"
	"doc-collab-be/internal/constant"
	"doc-collab-be/internal/entity"
	"doc-collab-be/internal/pkg/logger"
	"doc-collab-be/internal/repository/contract"
	"doc-collab-be/pkg/embedding"
	"doc-collab-be/pkg/rag/fusion"
	"doc-collab-be/pkg/rag/query"
	"doc-collab-be/pkg/rag/section"
	"doc-collab-be/pkg/store"

	"github.com/google/uuid"
)

// KeywordNominalSimilarity is assigned to full-text hits in single-method
// keyword retrieval, where the store's rank has no comparable scale.
const KeywordNominalSimilarity = 0.8

// Request describes one retrieval run against a single document.
type Request struct {
	DocumentId uuid.UUID
	Query      string
	Method     string // constant.RetrievalMethodVector | Keyword | Hybrid
	Limit      int
}

// Result carries the ranked passages plus what actually happened: MethodUsed
// can differ from the requested method when a leg degraded.
type Result struct {
	Results       []store.SearchResult
	MethodUsed    string
	ExpandedQuery string
}

// Orchestrator runs the retrieval pipeline: query expansion, parallel
// vector/keyword/section legs, rank fusion, section boosting and
// deduplication.
type Orchestrator struct {
	paragraphRepository contract.ParagraphRepository
	embeddingProvider   embedding.EmbeddingProvider
	analyzer            *query.Analyzer
	vectorThreshold     float64
	log                 logger.ILogger
}

func NewOrchestrator(
	paragraphRepository contract.ParagraphRepository,
	embeddingProvider embedding.EmbeddingProvider,
	analyzer *query.Analyzer,
	vectorThreshold float64,
	log logger.ILogger,
) *Orchestrator {
	if vectorThreshold <= 0 {
		vectorThreshold = 0.5
	}
	return &Orchestrator{
		paragraphRepository: paragraphRepository,
		embeddingProvider:   embeddingProvider,
		analyzer:            analyzer,
		vectorThreshold:     vectorThreshold,
		log:                 log,
	}
}

// Retrieve executes the requested retrieval method and returns a ranked,
// deduplicated passage list. In hybrid mode the failure of one leg degrades
// to the surviving leg instead of failing the run; only when no primary leg
// produces a ranking does Retrieve return ErrRetrievalUnavailable.
func (o *Orchestrator) Retrieve(ctx context.Context, req Request) (*Result, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = fusion.DefaultResultLimit
	}

	expanded := o.analyzer.Expand(req.Query)
	// Section references are parsed from the literal query, not the
	// expanded one.
	sectionNumbers := section.ParseReferences(req.Query)

	wantVector := req.Method == constant.RetrievalMethodVector || req.Method == constant.RetrievalMethodHybrid
	wantKeyword := req.Method == constant.RetrievalMethodKeyword || req.Method == constant.RetrievalMethodHybrid

	var (
		vectorResults  []store.SearchResult
		keywordResults []store.SearchResult
		sectionHits    []store.SearchResult
		matched        map[uuid.UUID]bool
		vectorErr      error
		keywordErr     error
	)

	// Each leg records its own error and returns nil so a failing leg does
	// not cancel its siblings.
	g, gctx := errgroup.WithContext(ctx)

	if wantVector {
		g.Go(func() error {
			vectorResults, vectorErr = o.runVectorLeg(gctx, req.DocumentId, expanded, limit)
			return nil
		})
	}
	if wantKeyword {
		// Full text matches literal terms, so the keyword leg searches the
		// raw query. Only the vector leg sees the expansion.
		g.Go(func() error {
			keywordResults, keywordErr = o.runKeywordLeg(gctx, req.DocumentId, req.Query, limit)
			return nil
		})
	}
	if len(sectionNumbers) > 0 {
		g.Go(func() error {
			var err error
			sectionHits, matched, err = o.runSectionLeg(gctx, req.DocumentId, sectionNumbers)
			if err != nil {
				// Section lookup only augments the ranking; its failure is
				// not fatal.
				o.log.Warn("rag.search", "section leg failed", map[string]interface{}{
					"document_id": req.DocumentId.String(),
					"error":       err.Error(),
				})
				sectionHits, matched = nil, nil
			}
			return nil
		})
	}

	_ = g.Wait()

	methodUsed := req.Method
	var primary []store.SearchResult

	switch {
	case wantVector && wantKeyword:
		switch {
		case vectorErr == nil && keywordErr == nil:
			primary = fusion.ReciprocalRankFuse(vectorResults, keywordResults)
		case vectorErr != nil && keywordErr == nil:
			o.log.Warn("rag.search", "vector leg failed, degrading to keyword", map[string]interface{}{
				"document_id": req.DocumentId.String(),
				"error":       vectorErr.Error(),
			})
			primary = keywordResults
			methodUsed = constant.RetrievalMethodKeyword
		case vectorErr == nil && keywordErr != nil:
			o.log.Warn("rag.search", "keyword leg failed, degrading to vector", map[string]interface{}{
				"document_id": req.DocumentId.String(),
				"error":       keywordErr.Error(),
			})
			primary = vectorResults
			methodUsed = constant.RetrievalMethodVector
		default:
			return nil, apperrors.NewRetrievalUnavailable(vectorErr)
		}
	case wantVector:
		if vectorErr != nil {
			return nil, apperrors.NewRetrievalUnavailable(vectorErr)
		}
		primary = vectorResults
	case wantKeyword:
		if keywordErr != nil {
			return nil, apperrors.NewRetrievalUnavailable(keywordErr)
		}
		primary = keywordResults
	default:
		return nil, apperrors.NewValidationError("unknown retrieval method: " + req.Method)
	}

	primary = section.BoostMatched(primary, matched)

	// Section hits are listed ahead of the primary pool so the stable sort
	// keeps them first on score ties and dedup lets them win over primary
	// duplicates.
	merged := make([]store.SearchResult, 0, len(sectionHits)+len(primary))
	merged = append(merged, sectionHits...)
	merged = append(merged, primary...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Similarity > merged[j].Similarity
	})

	final := fusion.Deduplicate(merged, limit)

	return &Result{
		Results:       final,
		MethodUsed:    methodUsed,
		ExpandedQuery: expanded,
	}, nil
}

func (o *Orchestrator) runVectorLeg(ctx context.Context, documentId uuid.UUID, expandedQuery string, limit int) ([]store.SearchResult, error) {
	embeddingResp, err := o.embeddingProvider.Generate(ctx, expandedQuery, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}

	scored, err := o.paragraphRepository.SearchSimilarWithScore(
		ctx, documentId, embeddingResp.Embedding.Values, limit, o.vectorThreshold,
	)
	if err != nil {
		return nil, err
	}

	results := make([]store.SearchResult, 0, len(scored))
	for _, sp := range scored {
		results = append(results, toSearchResult(sp.Paragraph, sp.Similarity, store.SourceVector))
	}
	return results, nil
}

func (o *Orchestrator) runKeywordLeg(ctx context.Context, documentId uuid.UUID, rawQuery string, limit int) ([]store.SearchResult, error) {
	paragraphs, err := o.paragraphRepository.SearchFullText(ctx, documentId, rawQuery, limit)
	if err != nil {
		return nil, err
	}

	results := make([]store.SearchResult, 0, len(paragraphs))
	for _, p := range paragraphs {
		results = append(results, toSearchResult(p, KeywordNominalSimilarity, store.SourceKeyword))
	}
	return results, nil
}

func (o *Orchestrator) runSectionLeg(ctx context.Context, documentId uuid.UUID, numbers []string) ([]store.SearchResult, map[uuid.UUID]bool, error) {
	var hits []store.SearchResult
	matched := make(map[uuid.UUID]bool)

	for _, num := range numbers {
		// A prefix of "3." matches both "3. Scope" and "3.1 Deliverables".
		paragraphs, err := o.paragraphRepository.FindBySectionTitlePrefix(ctx, documentId, num+".")
		if err != nil {
			return nil, nil, err
		}
		for _, p := range paragraphs {
			hits = append(hits, toSearchResult(p, section.SectionHitScore, store.SourceSection))
			matched[p.SectionId] = true
		}
	}

	return hits, matched, nil
}

func toSearchResult(p *entity.Paragraph, similarity float64, source store.Source) store.SearchResult {
	return store.SearchResult{
		ParagraphId:  p.Id,
		Content:      p.Content,
		SectionId:    p.SectionId,
		SectionTitle: p.SectionTitle,
		OrderIndex:   p.OrderIndex,
		Similarity:   similarity,
		Source:       source,
	}
}
