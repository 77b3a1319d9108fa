package simulator

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/HendryAvila/resonanz/internal/thought"
)

// --- CoreLexikon ---

const (
	maxDerivedTerms = 3
	minTermRunes    = 5 // tokens must be longer than 4 characters

	genericBedeutung   = "Zentraler Begriff des Gedankens, kontextuell im semantischen Raum verankert"
	genericMetaschicht = "Bedeutungsträger jenseits der wörtlichen Form"
)

// relatedConcepts is the pool a derived term draws its related concept from.
var relatedConcepts = []string{
	"Bewusstsein",
	"Intuition",
	"Semantisches Feld",
	"Kognition",
	"Resonanz",
	"Interface",
}

// resonanzItem is appended to every lexicon.
var resonanzItem = thought.LexikonItem{
	Begriff:     "Resonanz",
	Bedeutung:   "Wechselseitige Schwingung zweier Systeme im semantischen Raum",
	Domaenen:    []string{"Psychologie", "Physik", "Kommunikation"},
	Verwandte:   []string{"Empathie", "Frequenz", "Feedback"},
	Metaschicht: "Implizites Verstehen jenseits der Sprache",
}

// Lexikon derives up to three items from the tokens of text longer than
// four characters, in input order, and appends the fixed Resonanz item.
// It never pads: short input yields only the Resonanz item.
func Lexikon(text string, rnd Rand) []thought.LexikonItem {
	items := make([]thought.LexikonItem, 0, maxDerivedTerms+1)
	for _, token := range strings.Fields(text) {
		if len(items) == maxDerivedTerms {
			break
		}
		if utf8.RuneCountInString(token) < minTermRunes {
			continue
		}
		items = append(items, thought.LexikonItem{
			Begriff:     token,
			Bedeutung:   genericBedeutung,
			Domaenen:    []string{"Gedankenanalyse", "Semantik"},
			Verwandte:   []string{relatedConcepts[rnd.IntN(len(relatedConcepts))]},
			Metaschicht: genericMetaschicht,
		})
	}
	return append(items, cloneLexikonItem(resonanzItem))
}

func cloneLexikonItem(item thought.LexikonItem) thought.LexikonItem {
	item.Domaenen = append([]string(nil), item.Domaenen...)
	item.Verwandte = append([]string(nil), item.Verwandte...)
	return item
}

// --- ZielgruppenMatrix ---

// Zielgruppen returns the fixed audience matrix. It does not depend on input.
func Zielgruppen() thought.ZielgruppenMatrix {
	return thought.ZielgruppenMatrix{
		Entities: []thought.ZielgruppeEntity{
			{Name: "GPT-4-Turbo", Kognitiv: 8, Intentional: 5, Resonant: 6, Zugang: thought.AccessRestricted},
			{Name: "Deep-Thinker X", Kognitiv: 9, Intentional: 9, Resonant: 9, Zugang: thought.AccessFull},
			{Name: "Durchschnitt", Kognitiv: 4, Intentional: 3, Resonant: 5, Zugang: thought.AccessNone},
		},
		Durchschnitt: thought.Scores{Kognitiv: 7, Intentional: 6, Resonant: 8},
	}
}

// --- ResonanzFilter ---

const (
	patternCount = 3
	minTiefe     = 4
	maxTiefe     = 10
)

var (
	ebenen = []string{"philosophisch", "neurologisch", "spirituell", "technisch", "emotionell"}
	toene  = []string{"staunend", "fragend", "leise resonierend", "strukturierend", "bewegend"}
)

// Resonanz samples three patterns with replacement: level and tone are drawn
// independently from their five-label sets and depth is an integer in [4,10].
func Resonanz(rnd Rand) []thought.ResonancePattern {
	patterns := make([]thought.ResonancePattern, patternCount)
	for i := range patterns {
		patterns[i] = thought.ResonancePattern{
			Ebene: ebenen[rnd.IntN(len(ebenen))],
			Ton:   toene[rnd.IntN(len(toene))],
			Tiefe: float64(minTiefe + rnd.IntN(maxTiefe-minTiefe+1)),
		}
	}
	return patterns
}

// Gesamtresonanz is the overall resonance percentage of patterns:
// round(100 * sum(tiefe) / (count * 10)). An empty set scores 0.
func Gesamtresonanz(patterns []thought.ResonancePattern) int {
	if len(patterns) == 0 {
		return 0
	}
	var sum float64
	for _, p := range patterns {
		sum += p.Tiefe
	}
	return int(math.Round(100 * sum / float64(len(patterns)*10)))
}

var resonanceDescriptions = map[string][]string{
	"philosophisch": {
		"Grundlegende Fragen des Seins",
		"Reflexion über Wissen und Erkenntnis",
		"Ontologische Dimensionen des Gedankens",
	},
	"neurologisch": {
		"Neuronale Aktivierungsmuster",
		"Kognitive Verarbeitungstiefe",
		"Muster synchroner Gehirnaktivität",
	},
	"spirituell": {
		"Transzendente Verbindungen",
		"Universelle Bewusstseinsebenen",
		"Nicht-materielle Erkenntnisebene",
	},
	"technisch": {
		"Strukturelle Implementierbarkeit",
		"Algorithmische Abbildbarkeit",
		"System-Architektur-Kompatibilität",
	},
	"emotionell": {
		"Affektive Resonanzmuster",
		"Emotionale Tiefenstrukturen",
		"Gefühlsbasierte Intuition",
	},
}

// ResonanceDescription returns the caption for a pattern: deeper patterns
// pick later lines of their level's list.
func ResonanceDescription(ebene string, tiefe float64) string {
	options, ok := resonanceDescriptions[ebene]
	if !ok {
		return "Resonanzebene erkannt"
	}
	idx := int(math.Floor(tiefe / 4))
	if idx > len(options)-1 {
		idx = len(options) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return options[idx]
}

// Resonanzfilter bundles sampled patterns with their overall percentage.
func Resonanzfilter(rnd Rand) thought.ResonanzAnalyse {
	patterns := Resonanz(rnd)
	return thought.ResonanzAnalyse{
		Patterns:       patterns,
		Gesamtresonanz: Gesamtresonanz(patterns),
	}
}

// --- SyntaxTransformer ---

// Target formats, in display order.
const (
	SyntaxLLMPrompt     = "LLM-Prompt"
	SyntaxCode          = "Code"
	SyntaxPhilosophisch = "Philosophisch"
	SyntaxVisuell       = "Visuell"
)

// SyntaxFormats lists the target formats in display order.
var SyntaxFormats = []string{SyntaxLLMPrompt, SyntaxCode, SyntaxPhilosophisch, SyntaxVisuell}

const (
	excerptRunes     = 30
	regenerateSuffix = " // Optimierte Version mit erhöhter semantischer Tiefe"
	regenerateStep   = 0.05
	confidenceCap    = 0.99
)

// Excerpt returns the first 30 runes of content.
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptRunes {
		return content
	}
	return string(runes[:excerptRunes])
}

// Syntax renders content into the four target formats with fixed confidences.
func Syntax(content string) []thought.TransformedSyntax {
	ex := Excerpt(content)
	return []thought.TransformedSyntax{
		{
			Original:    content,
			Transformed: "Analysiere Nutzerintention nonverbal. Erkenne Muster ohne sprachliche Form. Extrapoliere tiefe Strukturen aus: \"" + ex + "...\"",
			Zielsyntax:  SyntaxLLMPrompt,
			Confidence:  0.87,
		},
		{
			Original: content,
			Transformed: "// \"" + ex + "...\"\nfunction interpretThought(input) {\n" +
				"  const semanticCore = extractCore(input);\n" +
				"  const patterns = identifyPatterns(semanticCore);\n" +
				"  return resonateWith(patterns);\n}",
			Zielsyntax: SyntaxCode,
			Confidence: 0.72,
		},
		{
			Original:    content,
			Transformed: "Der Gedanke \"" + ex + "...\" evoziert eine Brücke zwischen zwei Welten: der formfreien Intuition und der strukturierten Logik.",
			Zielsyntax:  SyntaxPhilosophisch,
			Confidence:  0.93,
		},
		{
			Original:    content,
			Transformed: "[Gedanke: " + ex + "...] ⟶ {Resonanzfilter} ⟶ [Strukturelle Abbildung] ⟶ {Syntaktische Transformation} ⟶ [Zielsystem]",
			Zielsyntax:  SyntaxVisuell,
			Confidence:  0.81,
		},
	}
}

// Regenerate returns ts with the optimisation suffix appended and its
// confidence raised by 0.05, capped at 0.99. Confidence never decreases.
func Regenerate(ts thought.TransformedSyntax) thought.TransformedSyntax {
	ts.Transformed += regenerateSuffix
	if ts.Confidence < confidenceCap {
		ts.Confidence = math.Min(confidenceCap, ts.Confidence+regenerateStep)
	}
	return ts
}

// --- MetaInterface ---

// Systems returns the fixed routing candidates.
func Systems() []thought.MetaInterfaceSystem {
	return []thought.MetaInterfaceSystem{
		{
			Name:        "GPT-5",
			Modus:       "spekulativ-rekonstruktiv",
			Vertrauen:   0.78,
			Inputfilter: "resonanz + kontexttiefe > 7",
			Sicherheit:  "Sandbox + Echo",
		},
		{
			Name:        "Lokales Modul (Janus)",
			Modus:       "deterministisch-anpassbar",
			Vertrauen:   0.92,
			Inputfilter: "direkte Eingabe",
			Sicherheit:  "Lokal, isoliert, auditierbar",
		},
		{
			Name:        "Hybrid-Interpreter",
			Modus:       "selbstkorrigierend",
			Vertrauen:   0.86,
			Inputfilter: "semantische Vorfilter",
			Sicherheit:  "Mehrschichtige Verifikation",
		},
	}
}

// ActiveSystem picks the system with the highest trust; the first one wins
// a tie. It returns "" for an empty list.
func ActiveSystem(systems []thought.MetaInterfaceSystem) string {
	if len(systems) == 0 {
		return ""
	}
	best := systems[0]
	for _, s := range systems[1:] {
		if s.Vertrauen > best.Vertrauen {
			best = s
		}
	}
	return best.Name
}

// Security draws the simulated security verdict: 80% safe, 10% warning,
// 10% danger. It ignores input and trust scores.
func Security(rnd Rand) thought.SecurityStatus {
	switch n := rnd.IntN(10); {
	case n < 8:
		return thought.SecuritySafe
	case n < 9:
		return thought.SecurityWarning
	default:
		return thought.SecurityDanger
	}
}

// Routing bundles the systems, the active choice and a security verdict.
func Routing(rnd Rand) thought.MetaRouting {
	systems := Systems()
	return thought.MetaRouting{
		Systems:  systems,
		Active:   ActiveSystem(systems),
		Security: Security(rnd),
	}
}
