package highlight

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
)

// CodeElementID is the id of the element that holds the rendered code.
// The image exporter screenshots this element.
const CodeElementID = "code"

// HTMLOptions controls page rendering
type HTMLOptions struct {
	Theme       *Theme
	Title       string
	LineNumbers bool
	// Width is the minimum width of the code element in CSS pixels
	Width int
}

type htmlPage struct {
	Title       string
	Style       template.CSS
	ElementID   string
	Lines       []Line
	LineNumbers bool
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>{{.Style}}</style>
</head>
<body>
<div id="{{.ElementID}}" class="window">
<div class="titlebar"><span class="dot red"></span><span class="dot yellow"></span><span class="dot green"></span><span class="name">{{.Title}}</span></div>
<pre>{{range $i, $line := .Lines}}<span class="line">{{if $.LineNumbers}}<span class="ln">{{inc $i}}</span>{{end}}{{range $line}}<span class="{{.Class}}">{{.Text}}</span>{{end}}</span>
{{end}}</pre>
</div>
</body>
</html>
`

var page = template.Must(template.New("page").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(pageTemplate))

// RenderHTML renders lines as a standalone HTML page
func RenderHTML(lines []Line, opts HTMLOptions) (string, error) {
	theme := opts.Theme
	if theme == nil {
		theme = DefaultTheme()
	}
	title := opts.Title
	if title == "" {
		title = "code.py"
	}

	var buf strings.Builder
	err := page.Execute(&buf, htmlPage{
		Title:       title,
		Style:       template.CSS(stylesheet(theme, opts.Width)),
		ElementID:   CodeElementID,
		Lines:       lines,
		LineNumbers: opts.LineNumbers,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute HTML template: %w", err)
	}
	return buf.String(), nil
}

func stylesheet(theme *Theme, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "body{margin:0;padding:32px;background:transparent;display:inline-block}")
	fmt.Fprintf(&b, ".window{background:%s;color:%s;border-radius:8px;padding:0 0 16px 0;", theme.Background, theme.Foreground)
	if width > 0 {
		fmt.Fprintf(&b, "min-width:%dpx;", width)
	}
	b.WriteString("box-shadow:0 10px 30px rgba(0,0,0,.45)}")
	b.WriteString(".titlebar{padding:12px 16px;font:13px sans-serif;opacity:.8}")
	b.WriteString(".dot{display:inline-block;width:12px;height:12px;border-radius:50%;margin-right:8px}")
	b.WriteString(".red{background:#ff5f56}.yellow{background:#ffbd2e}.green{background:#27c93f}")
	b.WriteString(".name{margin-left:8px}")
	b.WriteString("pre{margin:0;padding:0 20px;font:14px/1.5 'Fira Code','DejaVu Sans Mono',Consolas,monospace}")
	fmt.Fprintf(&b, ".ln{display:inline-block;width:3em;margin-right:1em;text-align:right;color:%s;user-select:none}", theme.Gutter)

	classes := make([]Class, 0, len(theme.Colors))
	for c := range theme.Colors {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	for _, c := range classes {
		fmt.Fprintf(&b, ".%s{color:%s}", c, theme.Colors[c])
	}
	b.WriteString(".keyword{font-weight:bold}.comment{font-style:italic}")
	return b.String()
}
