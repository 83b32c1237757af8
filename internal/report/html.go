package report

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"cfr/internal/domain"
	"cfr/internal/triage"
)

// HTMLRenderer converts Markdown reports into standalone HTML pages
type HTMLRenderer struct {
	markdown goldmark.Markdown
}

// NewHTMLRenderer creates a renderer with GitHub flavored Markdown enabled.
// Raw HTML is never passed through.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Render returns the HTML page for a load result
func (r *HTMLRenderer) Render(result *domain.Result, state *triage.State) ([]byte, error) {
	var body bytes.Buffer
	if err := r.markdown.Convert([]byte(Markdown(result, state)), &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n",
		html.EscapeString("Failure review: "+result.Source))
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
