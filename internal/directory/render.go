package directory

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/spec-kit/staff-directory/internal/domain"
)

const (
	// NoResultsTitle heads the empty-result state of both views.
	NoResultsTitle = "No staff members found"
	// NoResultsHint tells the reader how to get results back.
	NoResultsHint = "Try adjusting your search or filters."
)

const fragmentTemplates = `
{{define "grid"}}{{if .}}{{range .}}
<div class="staff-card">
  <img src="{{.Photo}}" alt="{{.Name}}" class="staff-photo" loading="lazy">
  <div class="staff-info">
    <h3 class="staff-name">{{.Name}}</h3>
    <p class="staff-position">{{.Position}}</p>
    <p class="staff-school">{{.School}}</p>
    <div class="staff-contact">
      <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
      <p><strong>Phone:</strong> <a href="tel:{{.Phone}}">{{formatPhone .Phone}}</a></p>
      {{- if .HasOffice}}
      <p><strong>Office:</strong> {{.Office}}</p>
      {{- end}}
    </div>
  </div>
</div>
{{end}}{{else}}<div class="no-results"><h3>{{noResultsTitle}}</h3><p>{{noResultsHint}}</p></div>{{end}}{{end}}

{{define "table"}}{{if .}}{{range .}}
<tr>
  <td>{{.Name}}</td>
  <td>{{.Position}}</td>
  <td>{{.School}}</td>
  <td><a href="mailto:{{.Email}}">{{.Email}}</a></td>
  <td><a href="tel:{{.Phone}}">{{formatPhone .Phone}}</a></td>
</tr>
{{end}}{{else}}<tr class="no-results"><td colspan="5">{{noResultsTitle}}. {{noResultsHint}}</td></tr>{{end}}{{end}}
`

var fragments = template.Must(template.New("fragments").Funcs(template.FuncMap{
	"formatPhone":    FormatPhone,
	"noResultsTitle": func() string { return NoResultsTitle },
	"noResultsHint":  func() string { return NoResultsHint },
}).Parse(fragmentTemplates))

// RenderGrid writes one card per record, or the no-results block.
func RenderGrid(w io.Writer, records []domain.StaffRecord) error {
	if err := fragments.ExecuteTemplate(w, "grid", records); err != nil {
		return fmt.Errorf("render grid: %w", err)
	}
	return nil
}

// RenderTable writes one table row per record, or a single no-results row.
func RenderTable(w io.Writer, records []domain.StaffRecord) error {
	if err := fragments.ExecuteTemplate(w, "table", records); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

// RenderView renders records in the given view mode and returns the fragment.
func RenderView(view domain.ViewMode, records []domain.StaffRecord) (string, error) {
	var buf bytes.Buffer
	var err error
	if view == domain.ViewTable {
		err = RenderTable(&buf, records)
	} else {
		err = RenderGrid(&buf, records)
	}
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ResultsMessage is the count readout shown under the search controls.
func ResultsMessage(shown, total int) string {
	if shown == total {
		return fmt.Sprintf("Showing all %d staff members", total)
	}
	return fmt.Sprintf("Showing %d of %d staff members", shown, total)
}
