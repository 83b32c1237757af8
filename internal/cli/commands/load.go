package commands

import (
	"context"
	"fmt"

	"cfr/internal/analysis"
	"cfr/internal/archive"
	"cfr/internal/config"
	"cfr/internal/discovery"
	"cfr/internal/domain"
	"cfr/internal/parser"
	"cfr/internal/storage"
	"cfr/internal/triage"
	"cfr/internal/ui"

	"github.com/sirupsen/logrus"
)

// loader opens an archive and runs the pipeline with the current config.
// The pipeline is built per call because flags are only known at run time.
type loader struct {
	config  *config.Config
	scanner *discovery.Scanner
	log     logrus.FieldLogger
}

func newLoader(cfg *config.Config, scanner *discovery.Scanner, log logrus.FieldLogger) *loader {
	return &loader{config: cfg, scanner: scanner, log: log}
}

// Load opens the archive at path and returns it together with its result.
// A directory path resolves to its newest archive. The caller closes the archive.
func (l *loader) Load(ctx context.Context, path string) (*archive.ZipArchive, *domain.Result, error) {
	path, err := l.scanner.Resolve(path)
	if err != nil {
		return nil, nil, err
	}
	l.log.WithField("archive", path).Debug("Loading archive")

	a, err := archive.Open(path)
	if err != nil {
		return nil, nil, err
	}

	locator := archive.NewLocator(l.config.GetBasePrefix(), l.config.GetScreenshotPrefix())
	extractor := parser.NewFailureStatsExtractor(l.config.LineMarker, l.config.PayloadMarker, l.log)
	pipeline := analysis.NewPipeline(l.config, locator, parser.NewJUnitParser(), extractor, l.log)
	pipeline.SetProgress(ui.NewProgressBar(l.config))

	result, err := pipeline.Load(ctx, a)
	if err != nil {
		a.Close()
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return a, result, nil
}

// filtered returns a copy of result whose groups honor --filter and --failed
func filtered(cfg *config.Config, result *domain.Result) *domain.Result {
	out := *result
	out.Groups = analysis.NewFilter(cfg.Flags.NameFilter, cfg.Flags.FailedOnly).Apply(result.Groups)
	return &out
}

// loadState returns the saved triage state of a result's archive
func loadState(st storage.Storage, result *domain.Result) (*triage.State, error) {
	state, err := st.LoadState(result.ArchiveHash)
	if err != nil {
		return nil, fmt.Errorf("failed to load triage state: %w", err)
	}
	return state, nil
}
