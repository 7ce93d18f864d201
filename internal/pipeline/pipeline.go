// Package pipeline wires extraction, sanitization and variant calling for both loci.
package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/inodb/hapmap/internal/profile"
	"github.com/inodb/hapmap/internal/snp"
)

// Result holds the extracted collections and reports for both loci.
type Result struct {
	MT       *profile.Collection // As extracted, before sanitization
	Y        *profile.Collection
	MTReport *snp.Report
	YReport  *snp.Report
}

// Reports returns the reports in output order: mtDNA, then Y.
func (r *Result) Reports() []*snp.Report {
	return []*snp.Report{r.MTReport, r.YReport}
}

// Collections returns the collections in output order: mtDNA, then Y.
func (r *Result) Collections() []*profile.Collection {
	return []*profile.Collection{r.MT, r.Y}
}

// Pipeline runs the hapmap stages over a cleaned line stream.
type Pipeline struct {
	extractor *profile.Extractor
	workers   int
	logger    *zap.Logger
}

// New creates a pipeline using the given extractor.
func New(e *profile.Extractor) *Pipeline {
	return &Pipeline{
		extractor: e,
		workers:   1,
		logger:    zap.NewNop(),
	}
}

// SetWorkers sets the per-locus worker count for variant calling.
// 1 calls columns sequentially; 0 uses runtime.NumCPU().
func (p *Pipeline) SetWorkers(n int) {
	p.workers = n
}

// SetLogger sets the logger for the pipeline and its extractor.
func (p *Pipeline) SetLogger(l *zap.Logger) {
	p.logger = l
	p.extractor.SetLogger(l)
}

// Run extracts both collections from lines and calls variants for each locus
// concurrently. A *profile.ParseError from extraction is returned unchanged.
func (p *Pipeline) Run(ctx context.Context, lines []string) (*Result, error) {
	mt, y, err := p.extractor.Extract(lines)
	if err != nil {
		return nil, err
	}
	p.logger.Info("extracted profiles",
		zap.Int("lines", len(lines)),
		zap.Int("mt_records", mt.Len()),
		zap.Int("y_records", y.Len()))

	return p.CallLoci(ctx, mt, y)
}

// CallLoci calls variants for already extracted mtDNA and Y collections
// concurrently.
func (p *Pipeline) CallLoci(ctx context.Context, mt, y *profile.Collection) (*Result, error) {
	res := &Result{MT: mt, Y: y}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.MTReport, err = p.Call(ctx, mt)
		return err
	})
	g.Go(func() error {
		var err error
		res.YReport, err = p.Call(ctx, y)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// Call sanitizes c and calls its variant sites.
func (p *Pipeline) Call(ctx context.Context, c *profile.Collection) (*snp.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean := c.Sanitized()
	var sites []snp.Site
	if p.workers == 1 {
		sites = snp.CallVariants(clean)
	} else {
		sites = snp.CallVariantsParallel(clean, p.workers)
	}

	if len(sites) == 0 {
		p.logger.Info("no variant sites", zap.String("locus", c.Locus), zap.Int("records", c.Len()))
	} else {
		p.logger.Info("called variant sites", zap.String("locus", c.Locus), zap.Int("sites", len(sites)))
	}
	return &snp.Report{Locus: c.Locus, Sites: sites}, nil
}
