package server

import (
	_ "embed"
	"html/template"
	"sort"
	"strconv"
	"strings"

	"github.com/rhobs/launch-dash/pkg/layout"
)

//go:embed ui/dashboard.html
var dashboardTemplate string

//go:embed ui/styles.css
var dashboardStyles string

//go:embed ui/app.js
var dashboardApp string

type pageData struct {
	Layout layout.Layout
	Styles template.CSS
	App    template.JS
}

func newPageData(l layout.Layout) pageData {
	return pageData{
		Layout: l,
		Styles: template.CSS(dashboardStyles),
		App:    template.JS(dashboardApp),
	}
}

func parseDashboard() (*template.Template, error) {
	return template.New("dashboard").Funcs(template.FuncMap{
		"style": inlineStyle,
		"num":   formatNumber,
	}).Parse(dashboardTemplate)
}

// inlineStyle renders a style map as a CSS declaration list, sorted by property.
func inlineStyle(style map[string]string) template.CSS {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(style[k])
		b.WriteString("; ")
	}
	return template.CSS(strings.TrimSpace(b.String()))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
