package services

import (
	"context"
	"fmt"

	"housing-report/models"
	"housing-report/storage"
	"housing-report/utils"
)

// Pipeline wires a metrics source and the optional summary cache around
// the assembler. The shell owns the dataset and passes it on every call.
type Pipeline struct {
	assembler *ReportAssembler
	metrics   storage.MetricsSource
	cache     *SummaryCache
	logger    *utils.Logger
}

// NewPipeline creates a Pipeline. cache may be nil.
func NewPipeline(assembler *ReportAssembler, metrics storage.MetricsSource, cache *SummaryCache, logger *utils.Logger) *Pipeline {
	return &Pipeline{assembler: assembler, metrics: metrics, cache: cache, logger: logger}
}

// Run builds one report. Cache failures are logged and otherwise ignored.
func (p *Pipeline) Run(ctx context.Context, dataset *models.Dataset, images []ImageRequest) (*models.Report, error) {
	records, err := p.metrics.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline: load metrics: %w", err)
	}

	in := ReportInput{Dataset: dataset, Metrics: records, Images: images}
	if dataset != nil && dataset.Rows() > 0 && p.cache.Available() {
		in.Summary = p.cachedSummary(ctx, dataset)
	}

	return p.assembler.Assemble(in)
}

func (p *Pipeline) cachedSummary(ctx context.Context, dataset *models.Dataset) *models.DatasetSummary {
	fp := dataset.Fingerprint()

	summary, ok, err := p.cache.Get(ctx, fp)
	if err != nil {
		p.logger.Warn("[pipeline] summary cache read failed: %v", err)
	}
	if ok {
		p.logger.Debug("[pipeline] summary cache hit %s", fp[:12])
		return summary
	}

	summary, err = p.assembler.Summarize(dataset)
	if err != nil {
		// Assemble reports the same error.
		return nil
	}
	if err := p.cache.Set(ctx, fp, summary); err != nil {
		p.logger.Warn("[pipeline] summary cache write failed: %v", err)
	}
	return summary
}
