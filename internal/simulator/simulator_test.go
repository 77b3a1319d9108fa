package simulator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/HendryAvila/resonanz/internal/thought"
)

// seqRand replays a fixed list of IntN results, wrapping around.
type seqRand struct {
	vals []int
	i    int
}

func (s *seqRand) IntN(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

func (s *seqRand) Float64() float64 { return 0 }

func newTestSimulator() *Simulator {
	return New(Config{}, NewRand(42), nil)
}

// --- Lexikon ---

func TestLexikon_DerivesUpToThreeTerms(t *testing.T) {
	items := Lexikon("Was ist Bewusstsein wirklich und wie entsteht es", NewRand(1))

	if len(items) != 4 {
		t.Fatalf("len(items) = %d, want 4", len(items))
	}
	want := []string{"Bewusstsein", "wirklich", "entsteht", "Resonanz"}
	for i, w := range want {
		if items[i].Begriff != w {
			t.Errorf("items[%d].Begriff = %q, want %q", i, items[i].Begriff, w)
		}
	}
}

func TestLexikon_ShortInputOnlyResonanz(t *testing.T) {
	items := Lexikon("Hi", NewRand(1))
	if len(items) != 1 || items[0].Begriff != "Resonanz" {
		t.Fatalf("items = %+v, want only Resonanz", items)
	}
	if strings.Join(items[0].Verwandte, ",") != "Empathie,Frequenz,Feedback" {
		t.Errorf("Verwandte = %v", items[0].Verwandte)
	}
}

func TestLexikon_EmptyInput(t *testing.T) {
	items := Lexikon("", NewRand(1))
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
}

func TestLexikon_CountsRunesNotBytes(t *testing.T) {
	// "Übel" is four runes but five bytes.
	items := Lexikon("Übel", NewRand(1))
	if len(items) != 1 {
		t.Errorf("four-rune token should not be derived, got %+v", items)
	}
}

func TestLexikon_RelatedConceptFromPool(t *testing.T) {
	items := Lexikon("Gedanken Maschinen Sprache", &seqRand{vals: []int{0, 3, 5}})
	want := []string{"Bewusstsein", "Kognition", "Interface"}
	for i, w := range want {
		if len(items[i].Verwandte) != 1 || items[i].Verwandte[0] != w {
			t.Errorf("items[%d].Verwandte = %v, want [%s]", i, items[i].Verwandte, w)
		}
	}
}

func TestLexikon_ResonanzItemNotShared(t *testing.T) {
	a := Lexikon("Hi", NewRand(1))
	a[0].Verwandte[0] = "mutated"
	b := Lexikon("Hi", NewRand(1))
	if b[0].Verwandte[0] != "Empathie" {
		t.Errorf("Resonanz item leaked mutation: %v", b[0].Verwandte)
	}
}

// --- Zielgruppen ---

func TestZielgruppen_Fixed(t *testing.T) {
	m := Zielgruppen()
	if len(m.Entities) != 3 {
		t.Fatalf("len(Entities) = %d, want 3", len(m.Entities))
	}
	for _, e := range m.Entities {
		if err := thought.ValidateTier(e.Zugang); err != nil {
			t.Errorf("%s: %v", e.Name, err)
		}
	}
	if m.Entities[1].Name != "Deep-Thinker X" || m.Entities[1].Zugang != thought.AccessFull {
		t.Errorf("Entities[1] = %+v", m.Entities[1])
	}
	if m.Durchschnitt != (thought.Scores{Kognitiv: 7, Intentional: 6, Resonant: 8}) {
		t.Errorf("Durchschnitt = %+v", m.Durchschnitt)
	}
}

// --- Resonanz ---

func TestGesamtresonanz_Example(t *testing.T) {
	patterns := []thought.ResonancePattern{{Tiefe: 8}, {Tiefe: 6}, {Tiefe: 5}}
	if got := Gesamtresonanz(patterns); got != 63 {
		t.Errorf("Gesamtresonanz = %d, want 63", got)
	}
}

func TestGesamtresonanz_Empty(t *testing.T) {
	if got := Gesamtresonanz(nil); got != 0 {
		t.Errorf("Gesamtresonanz(nil) = %d, want 0", got)
	}
}

func TestGesamtresonanz_Bounds(t *testing.T) {
	low := []thought.ResonancePattern{{Tiefe: 1}, {Tiefe: 1}}
	high := []thought.ResonancePattern{{Tiefe: 10}, {Tiefe: 10}, {Tiefe: 10}}
	if got := Gesamtresonanz(low); got != 10 {
		t.Errorf("low = %d, want 10", got)
	}
	if got := Gesamtresonanz(high); got != 100 {
		t.Errorf("high = %d, want 100", got)
	}
}

func TestResonanz_SamplesWithinSets(t *testing.T) {
	rnd := NewRand(7)
	for i := 0; i < 200; i++ {
		patterns := Resonanz(rnd)
		if len(patterns) != 3 {
			t.Fatalf("len = %d, want 3", len(patterns))
		}
		for _, p := range patterns {
			if p.Tiefe < 4 || p.Tiefe > 10 {
				t.Errorf("Tiefe %v out of [4,10]", p.Tiefe)
			}
			if _, ok := resonanceDescriptions[p.Ebene]; !ok {
				t.Errorf("unknown Ebene %q", p.Ebene)
			}
		}
		if g := Gesamtresonanz(patterns); g < 0 || g > 100 {
			t.Errorf("Gesamtresonanz %d out of range", g)
		}
	}
}

func TestResonanceDescription(t *testing.T) {
	tests := []struct {
		ebene string
		tiefe float64
		want  string
	}{
		{"philosophisch", 3, "Grundlegende Fragen des Seins"},
		{"philosophisch", 4, "Reflexion über Wissen und Erkenntnis"},
		{"technisch", 8, "System-Architektur-Kompatibilität"},
		{"emotionell", 10, "Gefühlsbasierte Intuition"},
		{"unbekannt", 5, "Resonanzebene erkannt"},
	}
	for _, tt := range tests {
		if got := ResonanceDescription(tt.ebene, tt.tiefe); got != tt.want {
			t.Errorf("ResonanceDescription(%q, %v) = %q, want %q", tt.ebene, tt.tiefe, got, tt.want)
		}
	}
}

// --- Syntax ---

func TestSyntax_FourFormatsInOrder(t *testing.T) {
	out := Syntax("Ich will, dass Maschinen mich verstehen, ohne dass ich sprechen muss.")
	if len(out) != 4 {
		t.Fatalf("len = %d, want 4", len(out))
	}
	wantConf := []float64{0.87, 0.72, 0.93, 0.81}
	for i, ts := range out {
		if ts.Zielsyntax != SyntaxFormats[i] {
			t.Errorf("out[%d].Zielsyntax = %q, want %q", i, ts.Zielsyntax, SyntaxFormats[i])
		}
		if ts.Confidence != wantConf[i] {
			t.Errorf("out[%d].Confidence = %v, want %v", i, ts.Confidence, wantConf[i])
		}
		if !strings.Contains(ts.Transformed, "Ich will, dass Maschinen mich ") {
			t.Errorf("out[%d] missing excerpt: %q", i, ts.Transformed)
		}
		if strings.Contains(ts.Transformed, "sprechen") {
			t.Errorf("out[%d] should only carry the first 30 runes: %q", i, ts.Transformed)
		}
	}
}

func TestExcerpt_Runes(t *testing.T) {
	in := strings.Repeat("ä", 40)
	if got := Excerpt(in); got != strings.Repeat("ä", 30) {
		t.Errorf("Excerpt = %q", got)
	}
	if got := Excerpt("kurz"); got != "kurz" {
		t.Errorf("Excerpt(kurz) = %q", got)
	}
}

func TestRegenerate_RaisesConfidence(t *testing.T) {
	ts := Regenerate(thought.TransformedSyntax{Transformed: "x", Confidence: 0.87})
	if ts.Confidence < 0.919 || ts.Confidence > 0.921 {
		t.Errorf("Confidence = %v, want 0.92", ts.Confidence)
	}
	if !strings.HasSuffix(ts.Transformed, "// Optimierte Version mit erhöhter semantischer Tiefe") {
		t.Errorf("Transformed = %q", ts.Transformed)
	}
}

func TestRegenerate_CapsAndNeverLowers(t *testing.T) {
	for _, c := range []float64{0, 0.5, 0.93, 0.96, 0.99, 1.0} {
		ts := thought.TransformedSyntax{Confidence: c}
		for i := 0; i < 5; i++ {
			next := Regenerate(ts)
			if next.Confidence < ts.Confidence {
				t.Errorf("start %v: confidence lowered %v -> %v", c, ts.Confidence, next.Confidence)
			}
			if ts.Confidence <= 0.99 && next.Confidence > 0.99 {
				t.Errorf("start %v: confidence %v exceeds cap", c, next.Confidence)
			}
			ts = next
		}
	}
}

// --- MetaInterface ---

func TestActiveSystem_HighestTrust(t *testing.T) {
	if got := ActiveSystem(Systems()); got != "Lokales Modul (Janus)" {
		t.Errorf("ActiveSystem = %q", got)
	}
}

func TestActiveSystem_FirstWinsTie(t *testing.T) {
	systems := []thought.MetaInterfaceSystem{
		{Name: "a", Vertrauen: 0.5},
		{Name: "b", Vertrauen: 0.9},
		{Name: "c", Vertrauen: 0.9},
	}
	if got := ActiveSystem(systems); got != "b" {
		t.Errorf("ActiveSystem = %q, want b", got)
	}
	if got := ActiveSystem(nil); got != "" {
		t.Errorf("ActiveSystem(nil) = %q, want empty", got)
	}
}

func TestSecurity_Distribution(t *testing.T) {
	counts := map[thought.SecurityStatus]int{}
	rnd := &seqRand{vals: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}}
	for i := 0; i < 10; i++ {
		counts[Security(rnd)]++
	}
	if counts[thought.SecuritySafe] != 8 || counts[thought.SecurityWarning] != 1 || counts[thought.SecurityDanger] != 1 {
		t.Errorf("counts = %v, want 8/1/1", counts)
	}
}

// --- Analyze ---

func TestAnalyze_Aggregates(t *testing.T) {
	a, err := newTestSimulator().Analyze(context.Background(), "Was ist Bewusstsein wirklich und wie entsteht es")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(a.CoreLexikon) != 4 {
		t.Errorf("CoreLexikon = %d items, want 4", len(a.CoreLexikon))
	}
	if len(a.SyntaxTransformer) != 4 {
		t.Errorf("SyntaxTransformer = %d items, want 4", len(a.SyntaxTransformer))
	}
	if a.MetaInterface.Active != "Lokales Modul (Janus)" {
		t.Errorf("Active = %q", a.MetaInterface.Active)
	}
	if len(a.Resonanzfilter.Patterns) != 3 {
		t.Errorf("Patterns = %d, want 3", len(a.Resonanzfilter.Patterns))
	}
}

func TestAnalyze_EmptyTextSucceeds(t *testing.T) {
	a, err := newTestSimulator().Analyze(context.Background(), "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(a.CoreLexikon) != 1 {
		t.Errorf("CoreLexikon = %+v", a.CoreLexikon)
	}
}

func TestAnalyze_SameSeedSameResult(t *testing.T) {
	a1, _ := New(Config{}, NewRand(9), nil).Analyze(context.Background(), "Gedanken fliegen frei")
	a2, _ := New(Config{}, NewRand(9), nil).Analyze(context.Background(), "Gedanken fliegen frei")
	if a1.Resonanzfilter.Gesamtresonanz != a2.Resonanzfilter.Gesamtresonanz ||
		a1.CoreLexikon[0].Verwandte[0] != a2.CoreLexikon[0].Verwandte[0] {
		t.Error("same seed produced different analyses")
	}
}

func TestAnalyze_CancelledDuringDelay(t *testing.T) {
	s := New(Config{AnalyzeDelay: time.Hour}, NewRand(1), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Analyze(ctx, "egal")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSleep_Zero(t *testing.T) {
	if err := Sleep(context.Background(), 0); err != nil {
		t.Errorf("Sleep(0) = %v", err)
	}
}
