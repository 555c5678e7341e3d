package render

import (
	"execogim/internal/domain/report"
)

// Renderer turns an assembled document into a downloadable byte stream.
type Renderer interface {
	Render(doc report.Document) (data []byte, contentType string, err error)
}
