package docs

import (
	"strings"
	"testing"
)

func TestSections_Order(t *testing.T) {
	sections, err := Sections()
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}
	want := []string{"einleitung", "corelexikon", "zielgruppen", "resonanzfilter", "syntaxtransformer", "metainterface"}
	if len(sections) != len(want) {
		t.Fatalf("got %d sections, want %d", len(sections), len(want))
	}
	for i, k := range want {
		if sections[i].Key != k {
			t.Errorf("sections[%d].Key = %q, want %q", i, sections[i].Key, k)
		}
	}
}

func TestLookup(t *testing.T) {
	s, err := Lookup("resonanzfilter")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !strings.Contains(s.Markdown, "Wie funktioniert Bewusstsein?") {
		t.Error("resonanzfilter section should carry its sample payload")
	}
	if _, err := Lookup("unbekannt"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestMarkdown_ContainsEveryModule(t *testing.T) {
	md, err := Markdown()
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	for _, h := range []string{"CoreLexikon", "ZielgruppenMatrix", "ResonanzFilter", "SyntaxTransformer", "MetaInterface"} {
		if !strings.Contains(md, "## "+h) {
			t.Errorf("missing heading %q", h)
		}
	}
}

func TestSectionKey(t *testing.T) {
	if got := sectionKey("04-syntaxtransformer.md"); got != "syntaxtransformer" {
		t.Errorf("sectionKey = %q", got)
	}
}
