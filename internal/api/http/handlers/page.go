package handlers

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/spec-kit/staff-directory/internal/directory"
	"github.com/spec-kit/staff-directory/internal/domain"
)

type pageData struct {
	Title       string
	Query       domain.QueryState
	Schools     []string
	Departments []string
	State       directory.State
	Results     string
	Message     string
	DebounceMS  int64
}

type tableHeader struct {
	Column domain.Column
	Label  string
}

var tableHeaders = []tableHeader{
	{domain.ColumnName, "Name"},
	{domain.ColumnPosition, "Position"},
	{domain.ColumnSchool, "School"},
	{domain.ColumnEmail, "Email"},
	{domain.ColumnPhone, "Phone"},
}

const pageTemplate = `{{define "controls"}}<input type="hidden" name="search" value="{{.SearchText}}"><input type="hidden" name="school" value="{{.SchoolFilter}}"><input type="hidden" name="department" value="{{.DepartmentFilter}}">{{end}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
</head>
<body>
<main class="directory" data-view="{{.State.View}}" data-search-debounce-ms="{{.DebounceMS}}">
  <h1>{{.Title}}</h1>
  <form class="directory-controls" method="get" action="/directory">
    <input type="search" id="staffSearch" name="search" value="{{.Query.SearchText}}" placeholder="Search by name, position or email">
    <select id="schoolFilter" name="school">
      <option value="all">All Schools</option>
      {{- range .Schools}}
      <option value="{{.}}"{{if eq . $.Query.SchoolFilter}} selected{{end}}>{{.}}</option>
      {{- end}}
    </select>
    <select id="departmentFilter" name="department">
      <option value="all">All Departments</option>
      {{- range .Departments}}
      <option value="{{.}}"{{if eq . $.Query.DepartmentFilter}} selected{{end}}>{{.}}</option>
      {{- end}}
    </select>
    <button type="submit">Search</button>
  </form>
  <div class="view-toggle">
    {{- range views}}
    <form method="post" action="/directory/view/{{.}}">{{template "controls" $.Query}}<button type="submit" data-view="{{.}}"{{if eq . $.State.View}} class="active"{{end}}>{{viewLabel .}}</button></form>
    {{- end}}
    <a class="export" href="/directory/export.csv?search={{.Query.SearchText}}&school={{.Query.SchoolFilter}}&department={{.Query.DepartmentFilter}}">Export CSV</a>
  </div>
  <p id="resultsCount">{{.Message}}</p>
  {{- if eq .State.View "table"}}
  <table id="staffTable">
    <thead><tr>
      {{- range headers}}
      <th data-sort="{{.Column}}"{{if and $.State.SortApplied (eq .Column $.State.Sort.Column)}} class="sorted-{{$.State.Sort.Direction}}"{{end}}><form method="post" action="/directory/sort/{{.Column}}">{{template "controls" $.Query}}<button type="submit">{{.Label}}</button></form></th>
      {{- end}}
    </tr></thead>
    <tbody id="staffTableBody">{{.Results | trusted}}</tbody>
  </table>
  {{- else}}
  <div id="staffGrid" class="staff-grid">{{.Results | trusted}}</div>
  {{- end}}
</main>
<script>
(function () {
  var main = document.querySelector("main.directory");
  var input = document.getElementById("staffSearch");
  if (!main || !input) { return; }
  var wait = parseInt(main.getAttribute("data-search-debounce-ms"), 10) || 300;
  var timer = null;
  input.addEventListener("input", function () {
    clearTimeout(timer);
    timer = setTimeout(function () {
      var params = new URLSearchParams(new FormData(input.form));
      fetch("/directory/results?" + params.toString(), { headers: { "Accept": "application/json" } })
        .then(function (resp) { return resp.json(); })
        .then(function (body) {
          var target = document.getElementById(body.data.view === "table" ? "staffTableBody" : "staffGrid");
          if (target) { target.innerHTML = body.data.html; }
          document.getElementById("resultsCount").textContent = body.data.message;
        });
    }, wait);
  });
})();
</script>
</body>
</html>
`

// The results fragment is produced by the directory renderer, which escapes
// every record field.
var page = template.Must(template.New("page").Funcs(template.FuncMap{
	"headers":   func() []tableHeader { return tableHeaders },
	"views":     func() []domain.ViewMode { return []domain.ViewMode{domain.ViewGrid, domain.ViewTable} },
	"viewLabel": viewLabel,
	"trusted":   func(s string) template.HTML { return template.HTML(s) }, //nolint:gosec
}).Parse(pageTemplate))

func viewLabel(v domain.ViewMode) string {
	if v == domain.ViewTable {
		return "Table"
	}
	return "Grid"
}

func renderPage(data pageData) (string, error) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}
