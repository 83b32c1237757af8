package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"cfr/internal/config"
)

// ProgressBar shows report document decoding progress on stderr
type ProgressBar struct {
	bar     *progressbar.ProgressBar
	out     io.Writer
	enabled bool
}

// NewProgressBar creates a progress bar. It stays silent when disabled in the
// config or when stderr is not a terminal.
func NewProgressBar(cfg *config.Config) *ProgressBar {
	enabled := !cfg.NoProgress && isatty.IsTerminal(os.Stderr.Fd())
	return &ProgressBar{out: os.Stderr, enabled: enabled}
}

// Start creates the underlying bar for total documents
func (p *ProgressBar) Start(total int) {
	if !p.enabled {
		return
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(p.out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Update updates the progress bar with parsed and skipped document counts
func (p *ProgressBar) Update(parsed, skipped int) {
	if p.bar == nil {
		return
	}
	p.bar.Set(parsed + skipped)
	p.bar.Describe(describe(parsed, skipped))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	if p.bar == nil {
		return
	}
	p.bar.Finish()
}

func describe(parsed, skipped int) string {
	return color.CyanString("Parsing reports: ") +
		color.GreenString("[parsed: %d", parsed) +
		" | " +
		color.YellowString("skipped: %d]", skipped)
}
