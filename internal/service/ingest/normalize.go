package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	mdExtensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	mdFlags      = html.CommonFlags
	docPolicy    = bluemonday.UGCPolicy()
)

// Normalize converts a course document to plain text ready for parsing and
// chunking. Markdown renders to HTML first; HTML is sanitized before the
// text extraction; anything else passes through unchanged.
func Normalize(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		p := parser.NewWithExtensions(mdExtensions)
		renderer := html.NewRenderer(html.RendererOptions{Flags: mdFlags})
		rendered := markdown.Render(p.Parse(data), renderer)
		return htmlToText(docPolicy.SanitizeBytes(rendered))
	case ".html", ".htm":
		return htmlToText(docPolicy.SanitizeBytes(data))
	default:
		return string(data), nil
	}
}

func htmlToText(data []byte) (string, error) {
	text, err := html2text.FromString(string(data), html2text.Options{OmitLinks: true})
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	return text, nil
}
