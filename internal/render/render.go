// Package render turns a CV into its print-styled HTML page.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"strings"

	"cv-generator/internal/model"
)

//go:embed templates/cv.html
var templatesFS embed.FS

var cvTemplate = template.Must(template.ParseFS(templatesFS, "templates/cv.html"))

type page struct {
	CV     model.CV
	Tokens model.ThemeTokens
	Accent string
	Photo  template.URL
}

// embeddedImage only lets inline image data through; anything else would be
// fetched by the browser or the PDF printer.
func embeddedImage(photo string) template.URL {
	if strings.HasPrefix(photo, "data:image/") {
		return template.URL(photo)
	}
	return ""
}

func WriteHTML(w io.Writer, cv model.CV) error {
	return cvTemplate.Execute(w, page{
		CV:     cv,
		Tokens: cv.Theme.Tokens(),
		Accent: cv.Accent(),
		Photo:  embeddedImage(cv.Profile.Photo),
	})
}

func HTML(cv model.CV) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, cv); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
