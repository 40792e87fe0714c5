package report

import (
	log "github.com/sirupsen/logrus"
)

// Export is a rendered report ready to be sent as an attachment.
type Export struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Exporter selects a renderer per requested format. Unknown formats render
// as plain text.
type Exporter struct {
	renderers map[string]Renderer
}

func NewExporter() *Exporter {
	return &Exporter{
		renderers: map[string]Renderer{
			"txt":   TextRenderer{},
			"csv":   CSVRenderer{},
			"excel": ExcelRenderer{},
			"pdf":   PDFRenderer{},
		},
	}
}

// Export renders the document in the requested format. A failed spreadsheet
// render degrades to CSV so the download still succeeds; other renderer
// failures are returned as errors.
func (e *Exporter) Export(doc Document, format string) (Export, error) {
	renderer, ok := e.renderers[format]
	if !ok {
		renderer = e.renderers["txt"]
	}

	content, err := renderer.Render(doc)
	if err != nil {
		if format != "excel" {
			return Export{}, err
		}
		log.Warnf("spreadsheet rendering failed, falling back to CSV: %v", err)
		renderer = e.renderers["csv"]
		content, err = renderer.Render(doc)
		if err != nil {
			return Export{}, err
		}
	}

	return Export{
		FileName:    fileName(doc, renderer.FileExtension()),
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}

// withRenderer swaps in a renderer for the given format. Used by tests to
// inject failures.
func (e *Exporter) withRenderer(format string, renderer Renderer) *Exporter {
	e.renderers[format] = renderer
	return e
}
