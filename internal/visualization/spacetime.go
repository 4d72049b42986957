// Package visualization renders the spacetime picture of a run: one row per
// period, one cell per site, colored by the site's Pauli label.
package visualization

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/nvandessel/opspread/internal/pauli"
	"github.com/nvandessel/opspread/internal/simulation"
)

// Format specifies the output format for rendering.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatHTML:
		return f, nil
	}
	return "", fmt.Errorf("unknown render format %q (valid: text, html)", s)
}

// labelColors maps Pauli labels to HTML colors.
var labelColors = map[byte]string{
	'I': "#f2f2f2",
	'X': "steelblue",
	'Y': "mediumseagreen",
	'Z': "tomato",
}

// textGlyphs maps Pauli labels to terminal glyphs. Identity sites are dots
// so the light cone stands out.
var textGlyphs = map[byte]byte{
	'I': '.',
	'X': 'X',
	'Y': 'Y',
	'Z': 'Z',
}

// Render writes the spacetime picture of result to w.
func Render(w io.Writer, result *simulation.Result, f Format) error {
	switch f {
	case FormatText:
		return RenderText(w, result)
	case FormatHTML:
		data, err := RenderHTML(result)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unknown render format %q", f)
}

// RenderText writes one line per period: the period, the operator with
// identity sites shown as dots, and the weight.
func RenderText(w io.Writer, result *simulation.Result) error {
	var b strings.Builder
	for _, pr := range rows(result) {
		line := make([]byte, len(pr.Pauli))
		for i := 0; i < len(pr.Pauli); i++ {
			g, ok := textGlyphs[pr.Pauli[i]]
			if !ok {
				g = '?'
			}
			line[i] = g
		}
		fmt.Fprintf(&b, "%3d |%s| %d\n", pr.Period, line, pr.Weight)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type htmlCell struct {
	Site  int
	Label string
	Color template.CSS
}

type htmlRow struct {
	Period int
	Weight int
	Cells  []htmlCell
}

type htmlLegend struct {
	Label string
	Color template.CSS
}

// htmlTemplateData holds data passed to the HTML template.
type htmlTemplateData struct {
	Title       string
	RunID       string
	ChainLength int
	Seed        uint64
	PhaseRule   string
	Classes     int
	CellSize    int
	Legend      []htmlLegend
	Rows        []htmlRow
}

// RenderHTML produces a self-contained HTML page of the spacetime picture.
func RenderHTML(result *simulation.Result) ([]byte, error) {
	tmplBytes, err := templates.ReadFile("templates/spacetime.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("read HTML template: %w", err)
	}
	tmpl, err := template.New("spacetime").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parse HTML template: %w", err)
	}

	title := result.Name
	if title == "" {
		title = "operator spreading"
	}
	data := htmlTemplateData{
		Title:       title,
		RunID:       result.RunID,
		ChainLength: result.ChainLength,
		Seed:        result.Seed,
		PhaseRule:   result.PhaseRule,
		Classes:     result.Classes,
		CellSize:    cellSize(result.ChainLength),
	}
	for _, l := range []pauli.Label{pauli.I, pauli.X, pauli.Y, pauli.Z} {
		name := l.String()
		data.Legend = append(data.Legend, htmlLegend{Label: name, Color: template.CSS(labelColors[name[0]])})
	}
	for _, pr := range rows(result) {
		row := htmlRow{Period: pr.Period, Weight: pr.Weight, Cells: make([]htmlCell, len(pr.Pauli))}
		for i := 0; i < len(pr.Pauli); i++ {
			color, ok := labelColors[pr.Pauli[i]]
			if !ok {
				color = "black"
			}
			// #nosec G203 -- colors come from the fixed labelColors table.
			row.Cells[i] = htmlCell{Site: i, Label: string(pr.Pauli[i]), Color: template.CSS(color)}
		}
		data.Rows = append(data.Rows, row)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute HTML template: %w", err)
	}
	return buf.Bytes(), nil
}

// rows returns the seeded operator followed by every completed period.
func rows(result *simulation.Result) []simulation.PeriodResult {
	return append([]simulation.PeriodResult{result.Initial}, result.Periods...)
}

// cellSize shrinks cells on long chains so a page stays readable.
func cellSize(l int) int {
	switch {
	case l <= 50:
		return 12
	case l <= 200:
		return 6
	default:
		return 3
	}
}
