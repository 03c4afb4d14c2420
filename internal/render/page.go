package render

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/sandeepkv93/taskflow/internal/filter"
	"github.com/sandeepkv93/taskflow/internal/model"
)

// PageData is everything a standalone board page needs.
type PageData struct {
	Board    *model.Board
	Criteria filter.Criteria
	Today    string
	Dark     bool
}

type pageView struct {
	ThemeClass string
	Dark       bool
	Search     string
	Label      string
	Overdue    bool
	Today      string
	Lists      []ListMarkup
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"esc": EscapeHTML,
}).Parse(`<!DOCTYPE html>
<html lang="en" class="{{.ThemeClass}}">
<head>
<meta charset="utf-8" />
<title>TaskFlow</title>
<style>
body{font-family:system-ui,sans-serif;margin:0;padding:1rem;background:#f5f6f8;color:#1d2330}
html.dark body{background:#151821;color:#e6e8ee}
.board{display:flex;gap:1rem;align-items:flex-start}
.list{flex:1;background:rgba(127,127,127,.08);border-radius:8px;padding:.5rem}
.card{background:#fff;border-radius:6px;padding:.5rem;margin:.5rem 0;box-shadow:0 1px 2px rgba(0,0,0,.15)}
html.dark .card{background:#222736}
.label-chip{display:inline-block;font-size:.75rem;padding:0 .4rem;margin-right:.25rem;border-radius:999px;background:#dfe7ff;color:#1d2a5c}
.due.overdue{color:#c62828;font-weight:600}
.due.ok{color:#2e7d32}
.hidden{display:none}
</style>
</head>
<body>
<header class="toolbar">
<h1>TaskFlow</h1>
<input id="searchInput" type="search" placeholder="Search titles" value="{{esc .Search}}" />
<input id="labelInput" type="text" placeholder="Filter label" value="{{esc .Label}}" />
<label><input id="overdueOnly" type="checkbox"{{if .Overdue}} checked{{end}} /> Overdue only</label>
<button id="themeToggle" aria-pressed="{{.Dark}}">Theme</button>
<span class="today">{{esc .Today}}</span>
</header>
<main class="board">
{{- range .Lists}}
<section class="list" id="{{esc (print .List)}}">
<h2>{{esc .Title}} <span class="count">{{.Count}}</span></h2>
<div class="cards">
{{.HTML}}</div>
</section>
{{- end}}
</main>
<div id="modal" class="modal hidden"><div class="modal-content"><button class="close-modal">&times;</button><div class="modal-body"></div></div></div>
</body>
</html>
`))

// RenderPage builds a complete HTML document for the board.
func RenderPage(data PageData) ([]byte, error) {
	view := pageView{
		Dark:    data.Dark,
		Search:  data.Criteria.Search,
		Label:   data.Criteria.Label,
		Overdue: data.Criteria.Overdue,
		Today:   data.Today,
		Lists:   RenderLists(data.Board, data.Criteria, data.Today),
	}
	if data.Dark {
		view.ThemeClass = "dark"
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}
