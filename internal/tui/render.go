package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/HendryAvila/resonanz/internal/facets"
	"github.com/HendryAvila/resonanz/internal/panel"
	"github.com/HendryAvila/resonanz/internal/simulator"
	"github.com/HendryAvila/resonanz/internal/thought"
)

const (
	emptyHint    = "Gib einen Gedanken ein, um die Analyse zu starten."
	averageLabel = "Ø Mittelwert" // "Durchschnitt" is taken by an entity
)

var panelTitles = map[facets.Name]string{
	facets.CoreLexikon:       "CoreLexikon",
	facets.ZielgruppenMatrix: "ZielgruppenMatrix",
	facets.ResonanzFilter:    "ResonanzFilter",
	facets.SyntaxTransformer: "SyntaxTransformer",
	facets.MetaInterface:     "MetaInterface",
}

// renderPanels draws every visible facet, one box per facet.
func (m Model) renderPanels() string {
	set := m.page.Composer.Panels()
	width := m.contentWidth()

	var boxes []string
	for _, name := range m.visibleFacets() {
		var state panel.State
		var body string
		switch name {
		case facets.CoreLexikon:
			snap := set.Lexikon.Snapshot()
			state, body = snap.State, renderLexikon(snap.Records)
		case facets.ZielgruppenMatrix:
			snap := set.Zielgruppen.Snapshot()
			state, body = snap.State, renderZielgruppen(snap.Records)
		case facets.ResonanzFilter:
			snap := set.Resonanz.Snapshot()
			state, body = snap.State, renderResonanz(snap.Records)
		case facets.SyntaxTransformer:
			snap := set.Syntax.Snapshot()
			state, body = snap.State, m.renderSyntax(snap.Records)
		case facets.MetaInterface:
			snap := set.Meta.Snapshot()
			state, body = snap.State, m.renderMeta(snap.Records)
		}

		switch state {
		case panel.Empty:
			body = m.styles.Muted.Render(emptyHint)
		case panel.Loading:
			body = m.spinner.View() + " analysiere ..."
		}
		title := m.styles.Heading.Render(panelTitles[name])
		boxes = append(boxes, m.styles.Panel.Width(width).Render(title+"\n"+body))
	}
	return strings.Join(boxes, "\n")
}

func renderLexikon(items []thought.LexikonItem) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "• %s: %s\n", it.Begriff, it.Bedeutung)
		fmt.Fprintf(&b, "  Domänen: %s · Verwandt: %s\n", strings.Join(it.Domaenen, ", "), strings.Join(it.Verwandte, ", "))
		fmt.Fprintf(&b, "  Metaschicht: %s", it.Metaschicht)
	}
	return b.String()
}

func renderZielgruppen(entities []thought.ZielgruppeEntity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-18s %4s %4s %4s  %s\n", "Entität", "Kog", "Int", "Res", "Zugang")
	for _, e := range entities {
		fmt.Fprintf(&b, "%-18s %4d %4d %4d  %s\n", e.Name, e.Kognitiv, e.Intentional, e.Resonant, e.Zugang)
	}
	avg := simulator.Zielgruppen().Durchschnitt
	fmt.Fprintf(&b, "%-18s %4d %4d %4d", averageLabel, avg.Kognitiv, avg.Intentional, avg.Resonant)
	return b.String()
}

func renderResonanz(patterns []thought.ResonancePattern) string {
	var b strings.Builder
	for _, p := range patterns {
		n := min(max(int(p.Tiefe), 0), 10)
		bar := strings.Repeat("█", n) + strings.Repeat("░", 10-n)
		fmt.Fprintf(&b, "%-10s %-12s %s %.0f/10\n", p.Ebene, p.Ton, bar, p.Tiefe)
		fmt.Fprintf(&b, "  %s\n", simulator.ResonanceDescription(p.Ebene, p.Tiefe))
	}
	fmt.Fprintf(&b, "Gesamtresonanz: %d%%", simulator.Gesamtresonanz(patterns))
	return b.String()
}

func (m Model) renderSyntax(records []thought.TransformedSyntax) string {
	selected := simulator.SyntaxFormats[m.syntaxIdx]
	var b strings.Builder
	for i, ts := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		head := fmt.Sprintf("[%s] %.0f%%", ts.Zielsyntax, ts.Confidence*100)
		if ts.Zielsyntax == selected {
			head = m.styles.Selected.Render("▸ " + head)
		} else {
			head = "  " + head
		}
		b.WriteString(head + "\n")
		fmt.Fprintf(&b, "    %s", ts.Transformed)
	}
	return b.String()
}

func (m Model) renderMeta(routes []thought.MetaRouting) string {
	if len(routes) == 0 {
		return ""
	}
	r := routes[0]
	var b strings.Builder
	for _, s := range r.Systems {
		marker := "○"
		if s.Name == r.Active {
			marker = "●"
		}
		fmt.Fprintf(&b, "%s %-22s %-14s Vertrauen %.2f\n", marker, s.Name, s.Modus, s.Vertrauen)
	}
	fmt.Fprintf(&b, "Aktiv: %s\n", r.Active)
	b.WriteString("Sicherheit: " + m.securityStyle(r.Security).Render(string(r.Security)))
	return b.String()
}

func (m Model) securityStyle(s thought.SecurityStatus) lipgloss.Style {
	switch s {
	case thought.SecurityDanger:
		return m.styles.Danger
	case thought.SecurityWarning:
		return m.styles.Warning
	default:
		return m.styles.Safe
	}
}
