package highlight

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme maps span classes to colors. Colors use lipgloss format ("#rrggbb").
type Theme struct {
	Name       string
	Background lipgloss.Color
	Foreground lipgloss.Color
	Gutter     lipgloss.Color
	Colors     map[Class]lipgloss.Color
}

var themes = map[string]*Theme{
	"dracula": {
		Name:       "dracula",
		Background: "#282a36",
		Foreground: "#f8f8f2",
		Gutter:     "#6272a4",
		Colors: map[Class]lipgloss.Color{
			Keyword:   "#ff79c6",
			String:    "#f1fa8c",
			Number:    "#bd93f9",
			Comment:   "#6272a4",
			Function:  "#50fa7b",
			ClassName: "#8be9fd",
			Builtin:   "#8be9fd",
			Operator:  "#ff79c6",
			Decorator: "#50fa7b",
			Constant:  "#bd93f9",
		},
	},
	"monokai": {
		Name:       "monokai",
		Background: "#272822",
		Foreground: "#f8f8f2",
		Gutter:     "#75715e",
		Colors: map[Class]lipgloss.Color{
			Keyword:   "#f92672",
			String:    "#e6db74",
			Number:    "#ae81ff",
			Comment:   "#75715e",
			Function:  "#a6e22e",
			ClassName: "#a6e22e",
			Builtin:   "#66d9ef",
			Operator:  "#f92672",
			Decorator: "#a6e22e",
			Constant:  "#ae81ff",
		},
	},
	"github-light": {
		Name:       "github-light",
		Background: "#ffffff",
		Foreground: "#24292e",
		Gutter:     "#959da5",
		Colors: map[Class]lipgloss.Color{
			Keyword:   "#d73a49",
			String:    "#032f62",
			Number:    "#005cc5",
			Comment:   "#6a737d",
			Function:  "#6f42c1",
			ClassName: "#6f42c1",
			Builtin:   "#005cc5",
			Operator:  "#d73a49",
			Decorator: "#6f42c1",
			Constant:  "#005cc5",
		},
	},
}

// LookupTheme returns the named theme and whether it exists
func LookupTheme(name string) (*Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// DefaultTheme returns the dark theme used when none is configured
func DefaultTheme() *Theme {
	return themes["dracula"]
}

// ThemeNames lists the available themes in sorted order
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Color returns the foreground color of class c
func (t *Theme) Color(c Class) lipgloss.Color {
	if color, ok := t.Colors[c]; ok {
		return color
	}
	return t.Foreground
}
