// Package analysis runs the extraction pipeline over an archive: it parses the
// report documents, attaches screenshots and groups test cases by reason.
package analysis

import (
	"context"
	"fmt"
	"sync"

	"cfr/internal/archive"
	"cfr/internal/config"
	"cfr/internal/domain"
	"cfr/internal/parser"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Progress receives document decoding progress
type Progress interface {
	Start(total int)
	Update(parsed, skipped int)
	Finish()
}

// Pipeline loads archives into grouped results
type Pipeline struct {
	locator   *archive.Locator
	parser    parser.ReportParser
	extractor parser.DiagnosticExtractor
	workers   int
	log       logrus.FieldLogger
	progress  Progress
}

// document is the outcome of decoding one report document
type document struct {
	cases   []domain.TestCase
	totals  domain.ReportTotals
	ok      bool
	warning string
}

// NewPipeline creates a new Pipeline
func NewPipeline(cfg *config.Config, locator *archive.Locator, reportParser parser.ReportParser, extractor parser.DiagnosticExtractor, log logrus.FieldLogger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		locator:   locator,
		parser:    reportParser,
		extractor: extractor,
		workers:   cfg.GetWorkers(),
		log:       log,
	}
}

// SetProgress sets the progress reporter used while decoding documents
func (p *Pipeline) SetProgress(progress Progress) {
	p.progress = progress
}

// Load runs the whole pipeline over one archive. The result depends only on
// the archive contents; nothing is carried over from earlier loads.
func (p *Pipeline) Load(ctx context.Context, a archive.Archive) (*domain.Result, error) {
	loadID := uuid.NewString()
	log := p.log.WithField("load", loadID)

	entries := a.Entries()
	reports, err := p.locator.Reports(entries)
	if err != nil {
		return nil, fmt.Errorf("%w under %s (expected files like results-US.xml)", err, p.locator.BasePrefix())
	}
	log.WithField("reports", len(reports)).Debug("Located report documents")

	docs := p.decode(ctx, a, reports, log)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &domain.Result{
		LoadID:  loadID,
		Records: []*domain.TestCase{},
	}
	if named, ok := a.(interface{ Name() string }); ok {
		result.Source = named.Name()
	}
	if hashed, ok := a.(interface{ Hash() string }); ok {
		result.ArchiveHash = hashed.Hash()
	}

	var totals domain.ReportTotals
	for _, doc := range docs {
		if !doc.ok {
			result.Warnings = append(result.Warnings, doc.warning)
			continue
		}
		totals.Add(doc.totals)
		for i := range doc.cases {
			result.Records = append(result.Records, &doc.cases[i])
		}
	}

	shots, found := p.locator.Screenshots(entries)
	if !found {
		msg := fmt.Sprintf("No .jpg screenshots found in %s", p.locator.ScreenshotDir())
		log.Info(msg)
		result.Warnings = append(result.Warnings, msg)
	}
	result.Screenshots = shots
	if result.Screenshots == nil {
		result.Screenshots = []string{}
	}

	AttachScreenshots(result.Records, shots)
	for _, amb := range FindAmbiguousScreenshots(result.Records) {
		log.WithFields(logrus.Fields{
			"screenshot": amb.Path,
			"tests":      amb.TestNames,
		}).Warn("Screenshot matches several test names")
	}

	result.Groups = GroupByReason(result.Records)
	result.Stats = Summarize(totals, result.Records, result.Groups)

	log.WithFields(logrus.Fields{
		"tests":  result.Stats.TotalTests,
		"failed": result.Stats.Failed,
		"groups": result.Stats.GroupCount,
	}).Debug("Archive loaded")

	return result, nil
}

// decode parses documents on a bounded pool of workers. Results are stored by
// document index so the output keeps archive order for any worker count.
func (p *Pipeline) decode(ctx context.Context, a archive.Archive, paths []string, log logrus.FieldLogger) []document {
	docs := make([]document, len(paths))
	if p.progress != nil {
		p.progress.Start(len(paths))
	}

	queue := make(chan int, len(paths))
	for i := range paths {
		queue <- i
	}
	close(queue)

	workerCount := p.workers
	if workerCount > len(paths) {
		workerCount = len(paths)
	}

	var mu sync.Mutex
	var parsed, skipped int

	var wg sync.WaitGroup
	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				if ctx.Err() != nil {
					return
				}
				docs[i] = p.decodeOne(ctx, a, paths[i], log)

				mu.Lock()
				if docs[i].ok {
					parsed++
				} else {
					skipped++
				}
				if p.progress != nil {
					p.progress.Update(parsed, skipped)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if p.progress != nil {
		p.progress.Finish()
	}
	return docs
}

func (p *Pipeline) decodeOne(ctx context.Context, a archive.Archive, path string, log logrus.FieldLogger) document {
	docLog := log.WithField("document", path)

	text, err := a.ReadText(ctx, path)
	if err != nil {
		docLog.WithError(err).Warn("Failed to read report document")
		return document{warning: fmt.Sprintf("Skipped %s: %v", path, err)}
	}

	report, err := p.parser.Parse([]byte(text))
	if err != nil {
		docLog.WithError(err).Warn("Failed to parse report document")
		return document{warning: fmt.Sprintf("Skipped %s: %v", path, err)}
	}

	for i := range report.Cases {
		report.Cases[i].FailureDetails = p.extractor.Extract(report.Cases[i].Stderr)
	}

	docLog.WithField("cases", len(report.Cases)).Debug("Parsed report document")
	return document{cases: report.Cases, totals: report.Totals, ok: true}
}
