package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cfr/internal/archive"
	"cfr/internal/archive/archivetest"
	"cfr/internal/config"
	"cfr/internal/domain"
	"cfr/internal/parser"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsUS = `<?xml version="1.0" encoding="UTF-8"?>
<testsuites tests="3" time="30">
  <testsuite name="us.spec.ts" tests="3">
    <testcase name="us.spec.ts › consent-banner" classname="tests/us.spec.ts" time="10">
      <failure>  Error: locator timeout</failure>
      <system-err>Autoconsent test failed on https://us.example failure stats: {"reason":"CMP not found","retry":0}</system-err>
    </testcase>
    <testcase name="us.spec.ts › cookie-wall" classname="tests/us.spec.ts" time="10"/>
    <testcase name="us.spec.ts › paywall" classname="tests/paywall.spec.ts" time="10"/>
  </testsuite>
</testsuites>`

const resultsDE = `<?xml version="1.0" encoding="UTF-8"?>
<testsuites>
  <testsuite name="de.spec.ts">
    <testcase name="de.spec.ts › cookie-wall" classname="tests/de.spec.ts" time="4"/>
    <testcase name="de.spec.ts › paywall" classname="tests/paywall.spec.ts" time="5"/>
  </testsuite>
</testsuites>`

type recordingProgress struct {
	total    int
	updates  int
	parsed   int
	skipped  int
	finished bool
}

func (r *recordingProgress) Start(total int) { r.total = total }

func (r *recordingProgress) Update(parsed, skipped int) {
	r.updates++
	r.parsed, r.skipped = parsed, skipped
}

func (r *recordingProgress) Finish() { r.finished = true }

func newTestPipeline(t *testing.T, workers int) (*Pipeline, *test.Hook) {
	t.Helper()
	cfg := config.New()
	cfg.Workers = workers

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	locator := archive.NewLocator(cfg.GetBasePrefix(), cfg.GetScreenshotPrefix())
	extractor := parser.NewFailureStatsExtractor(cfg.LineMarker, cfg.PayloadMarker, logger)
	return NewPipeline(cfg, locator, parser.NewJUnitParser(), extractor, logger), hook
}

func openTestArchive(t *testing.T, entries ...archivetest.Entry) *archive.ZipArchive {
	t.Helper()
	a, err := archive.OpenBytes("build.zip", archivetest.Build(t, entries...))
	require.NoError(t, err)
	return a
}

func scenarioArchive(t *testing.T) *archive.ZipArchive {
	return openTestArchive(t,
		archivetest.Entry{Name: "archive/results-US.xml", Body: resultsUS},
		archivetest.Entry{Name: "archive/results-DE.xml", Body: resultsDE},
		archivetest.Entry{Name: "archive/test-results/screenshots/consent-banner-retry0.jpg", Body: "jpeg"},
	)
}

func TestPipeline_Load_EndToEnd(t *testing.T) {
	pipeline, _ := newTestPipeline(t, 2)
	progress := &recordingProgress{}
	pipeline.SetProgress(progress)

	a := scenarioArchive(t)
	result, err := pipeline.Load(context.Background(), a)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.TestSuiteCount)
	assert.Equal(t, 5, result.Stats.TotalTests)
	assert.Equal(t, 30.0, result.Stats.TotalTime)
	assert.Equal(t, 4, result.Stats.Succeeded)
	assert.Equal(t, 1, result.Stats.Failed)
	assert.Equal(t, 2, result.Stats.GroupCount)

	require.Len(t, result.Groups, 2)
	assert.Equal(t, "Success", result.Groups[0].Reason)
	assert.Len(t, result.Groups[0].Items, 4)

	failed := result.Groups[1]
	assert.Equal(t, "CMP not found", failed.Reason)
	require.Len(t, failed.Items, 1)
	assert.Equal(t, "consent-banner", failed.Items[0].TestName)
	assert.Equal(t, []string{"archive/test-results/screenshots/consent-banner-retry0.jpg"}, failed.Items[0].Attachments)

	assert.Equal(t, a.Hash(), result.ArchiveHash)
	assert.Equal(t, "build.zip", result.Source)
	assert.NotEmpty(t, result.LoadID)
	assert.Empty(t, result.Warnings)

	assert.Equal(t, 2, progress.total)
	assert.Equal(t, 2, progress.updates)
	assert.Equal(t, 2, progress.parsed)
	assert.True(t, progress.finished)
}

func TestPipeline_Load_RecordsKeepDocumentOrder(t *testing.T) {
	pipeline, _ := newTestPipeline(t, 4)
	result, err := pipeline.Load(context.Background(), scenarioArchive(t))
	require.NoError(t, err)

	var files []string
	for _, r := range result.Records {
		files = append(files, r.TestFile)
	}
	want := []string{"tests/us.spec.ts", "tests/us.spec.ts", "tests/paywall.spec.ts", "tests/de.spec.ts", "tests/paywall.spec.ts"}
	assert.Equal(t, want, files)
}

func TestPipeline_Load_Deterministic(t *testing.T) {
	var first *domain.Result

	for _, workers := range []int{1, 1, 3, 8} {
		pipeline, _ := newTestPipeline(t, workers)
		result, err := pipeline.Load(context.Background(), scenarioArchive(t))
		require.NoError(t, err)

		if first == nil {
			first = result
			continue
		}
		if diff := cmp.Diff(first.Groups, result.Groups); diff != "" {
			t.Errorf("groups differ with %d workers (-first +current):\n%s", workers, diff)
		}
		if diff := cmp.Diff(first.Stats, result.Stats); diff != "" {
			t.Errorf("stats differ with %d workers (-first +current):\n%s", workers, diff)
		}
		if diff := cmp.Diff(first.Screenshots, result.Screenshots); diff != "" {
			t.Errorf("screenshots differ with %d workers (-first +current):\n%s", workers, diff)
		}
	}
}

func TestPipeline_Load_NoReports(t *testing.T) {
	pipeline, _ := newTestPipeline(t, 1)
	a := openTestArchive(t, archivetest.Entry{Name: "archive/test-results/screenshots/a-1.jpg", Body: "jpeg"})

	_, err := pipeline.Load(context.Background(), a)
	require.Error(t, err)
	assert.True(t, errors.Is(err, archive.ErrNoReports))
	assert.Contains(t, err.Error(), "archive/")
}

func TestPipeline_Load_SkipsMalformedDocuments(t *testing.T) {
	pipeline, hook := newTestPipeline(t, 2)
	a := openTestArchive(t,
		archivetest.Entry{Name: "archive/results-US.xml", Body: resultsUS},
		archivetest.Entry{Name: "archive/results-FR.xml", Body: "<testsuites><testsuite>"},
		archivetest.Entry{Name: "archive/test-results/screenshots/consent-banner-1.jpg", Body: "jpeg"},
	)

	result, err := pipeline.Load(context.Background(), a)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.TotalTests)
	assert.Equal(t, 1, result.Stats.TestSuiteCount)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "archive/results-FR.xml")

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Data["document"] == "archive/results-FR.xml" {
			warned = true
		}
	}
	assert.True(t, warned, "expected a warning for the malformed document")
}

func TestPipeline_Load_NoScreenshots(t *testing.T) {
	pipeline, _ := newTestPipeline(t, 1)
	a := openTestArchive(t, archivetest.Entry{Name: "archive/results-US.xml", Body: resultsUS})

	result, err := pipeline.Load(context.Background(), a)
	require.NoError(t, err)

	assert.Empty(t, result.Screenshots)
	require.Len(t, result.Warnings, 1)
	assert.True(t, strings.HasPrefix(result.Warnings[0], "No .jpg screenshots found in archive/test-results/screenshots/"))
	assert.Equal(t, 1, result.Stats.Failed)
}

func TestPipeline_Load_EmptyDocumentStillCounts(t *testing.T) {
	pipeline, _ := newTestPipeline(t, 1)
	a := openTestArchive(t,
		archivetest.Entry{Name: "archive/results-US.xml", Body: resultsUS},
		archivetest.Entry{Name: "archive/results-JP.xml", Body: `<testsuites tests="7" time="2"><testsuite/></testsuites>`},
	)

	result, err := pipeline.Load(context.Background(), a)
	require.NoError(t, err)

	assert.Len(t, result.Records, 3)
	assert.Equal(t, 10, result.Stats.TotalTests)
	assert.Equal(t, 32.0, result.Stats.TotalTime)
	assert.Equal(t, 2, result.Stats.TestSuiteCount)
}

func TestPipeline_Load_Cancelled(t *testing.T) {
	pipeline, _ := newTestPipeline(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.Load(ctx, scenarioArchive(t))
	assert.ErrorIs(t, err, context.Canceled)
}
