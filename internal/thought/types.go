// Package thought defines the records that flow through the resonance page:
// the submitted Thought and the five facet collections produced for it.
//
// Field names keep the German vocabulary of the facets (Ebene, Tiefe,
// Zielsyntax, ...) because those labels are shown to users verbatim and
// appear in the JSON payloads served over MCP.
package thought

import (
	"fmt"
	"time"
)

// --- Thought ---

// Thought is one submitted piece of text plus the summary metrics derived
// from its analysis. It is built once per submission and never mutated.
type Thought struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	ResonanceLevel *float64  `json:"resonanceLevel,omitempty"` // 0-10
	SemanticFields []string  `json:"semanticFields,omitempty"`
	Connections    []string  `json:"connections,omitempty"`
}

// --- Facet records ---

// ResonancePattern is one detected "resonance" layer of a thought.
type ResonancePattern struct {
	Ebene string  `json:"ebene"`
	Ton   string  `json:"ton"`
	Tiefe float64 `json:"tiefe"` // 1-10
}

// LexikonItem is a glossary entry shown by the CoreLexikon facet.
type LexikonItem struct {
	Begriff     string   `json:"begriff"`
	Bedeutung   string   `json:"bedeutung"`
	Domaenen    []string `json:"domänen"`
	Verwandte   []string `json:"verwandte"`
	Metaschicht string   `json:"metaschicht"`
}

// AccessTier is a sample system's nominal ability to use the interface.
type AccessTier string

const (
	AccessFull       AccessTier = "Voll"
	AccessRestricted AccessTier = "Eingeschränkt"
	AccessNone       AccessTier = "Nein"
)

// validTiers is the set of allowed access tiers.
var validTiers = map[AccessTier]bool{
	AccessFull:       true,
	AccessRestricted: true,
	AccessNone:       true,
}

// ValidateTier returns an error if the tier is not recognized.
func ValidateTier(t AccessTier) error {
	if !validTiers[t] {
		return fmt.Errorf("invalid access tier %q: must be one of: Voll, Eingeschränkt, Nein", t)
	}
	return nil
}

// ZielgruppeEntity scores one audience on the three fit axes (0-10 each).
type ZielgruppeEntity struct {
	Name        string     `json:"name"`
	Kognitiv    int        `json:"kognitiv"`
	Intentional int        `json:"intentional"`
	Resonant    int        `json:"resonant"`
	Zugang      AccessTier `json:"zugang"`
}

// Scores is the averaged fit block shown under the audience matrix.
type Scores struct {
	Kognitiv    int `json:"kognitiv"`
	Intentional int `json:"intentional"`
	Resonant    int `json:"resonant"`
}

// ZielgruppenMatrix is the audience facet: sample entities plus the average block.
type ZielgruppenMatrix struct {
	Entities     []ZielgruppeEntity `json:"entities"`
	Durchschnitt Scores             `json:"durchschnitt"`
}

// ResonanzAnalyse is the resonance facet: patterns plus the overall percentage.
type ResonanzAnalyse struct {
	Patterns       []ResonancePattern `json:"schwingung"`
	Gesamtresonanz int                `json:"gesamtresonanz"` // 0-100
}

// TransformedSyntax is the thought rendered into one target format.
type TransformedSyntax struct {
	Original    string  `json:"original"`
	Transformed string  `json:"transformed"`
	Zielsyntax  string  `json:"zielsyntax"`
	Confidence  float64 `json:"confidence"`
}

// MetaInterfaceSystem is one routing target of the MetaInterface facet.
type MetaInterfaceSystem struct {
	Name        string  `json:"name"`
	Modus       string  `json:"modus"`
	Vertrauen   float64 `json:"vertrauen"`
	Inputfilter string  `json:"inputfilter"`
	Sicherheit  string  `json:"sicherheit"`
}

// SecurityStatus is the three-level outcome of the simulated security check.
type SecurityStatus string

const (
	SecuritySafe    SecurityStatus = "safe"
	SecurityWarning SecurityStatus = "warning"
	SecurityDanger  SecurityStatus = "danger"
)

// MetaRouting is the routing facet: candidate systems, the chosen one and
// the independent security verdict.
type MetaRouting struct {
	Systems  []MetaInterfaceSystem `json:"systems"`
	Active   string                `json:"active"`
	Security SecurityStatus        `json:"security"`
}

// GedankenAnalyse is the full simulated analysis of one submission.
type GedankenAnalyse struct {
	CoreLexikon       []LexikonItem       `json:"corelexikon"`
	Zielgruppen       ZielgruppenMatrix   `json:"zielgruppen"`
	Resonanzfilter    ResonanzAnalyse     `json:"resonanzfilter"`
	SyntaxTransformer []TransformedSyntax `json:"syntaxtransformer"`
	MetaInterface     MetaRouting         `json:"metainterface"`
}
