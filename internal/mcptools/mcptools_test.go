package mcptools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/goleak"

	"github.com/HendryAvila/resonanz/internal/facets"
	"github.com/HendryAvila/resonanz/internal/journal/sqlite"
	"github.com/HendryAvila/resonanz/internal/page"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ─── Test helpers ────────────────────────────────────────────────────────────

// newTestPage creates a page with no artificial delays.
func newTestPage(t *testing.T) *page.Page {
	t.Helper()
	p := page.New(page.Config{Seed: 7}, nil)
	p.Composer.Start()
	t.Cleanup(p.Close)
	return p
}

// newTestJournal creates a sqlite journal in a temp directory.
func newTestJournal(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "resonanz.db"))
	if err != nil {
		t.Fatalf("failed to create journal: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

type decodedSnapshot struct {
	Thought struct {
		ID             string   `json:"id"`
		Content        string   `json:"content"`
		SemanticFields []string `json:"semanticFields"`
	} `json:"thought"`
	Panels []struct {
		Facet string `json:"facet"`
		State string `json:"state"`
	} `json:"panels"`
}

func submit(t *testing.T, p *page.Page, text string) decodedSnapshot {
	t.Helper()
	result, err := NewSubmitTool(p).Handle(testCtx(t), makeReq(map[string]interface{}{"text": text}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(result))
	}
	var snap decodedSnapshot
	if err := json.Unmarshal([]byte(resultText(result)), &snap); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	return snap
}

// ─── SubmitTool Tests ────────────────────────────────────────────────────────

func TestSubmitTool_Definition(t *testing.T) {
	def := NewSubmitTool(newTestPage(t)).Definition()

	if def.Name != "resonanz_submit" {
		t.Errorf("name = %q, want resonanz_submit", def.Name)
	}
	if _, ok := def.InputSchema.Properties["text"]; !ok {
		t.Error("missing 'text' property")
	}
	if len(def.InputSchema.Required) != 1 || def.InputSchema.Required[0] != "text" {
		t.Errorf("required = %v, want [text]", def.InputSchema.Required)
	}
}

func TestSubmitTool_BlankShowsNotice(t *testing.T) {
	p := newTestPage(t)
	result, err := NewSubmitTool(p).Handle(testCtx(t), makeReq(map[string]interface{}{"text": "   "}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for blank text")
	}
	if resultText(result) != page.BlankNotice {
		t.Errorf("text = %q, want %q", resultText(result), page.BlankNotice)
	}
	if p.Composer.Current() != nil {
		t.Error("blank submission must not publish a thought")
	}
}

func TestSubmitTool_PopulatesPanels(t *testing.T) {
	p := newTestPage(t)
	snap := submit(t, p, "Was ist Bewusstsein wirklich")

	if snap.Thought.ID == "" || snap.Thought.Content != "Was ist Bewusstsein wirklich" {
		t.Errorf("thought = %+v", snap.Thought)
	}
	if len(snap.Panels) != len(facets.Names) {
		t.Fatalf("got %d panels, want %d", len(snap.Panels), len(facets.Names))
	}
	for _, v := range snap.Panels {
		if v.State != "populated" {
			t.Errorf("%s state = %s, want populated", v.Facet, v.State)
		}
	}
}

func TestSubmitTool_NoWait(t *testing.T) {
	p := newTestPage(t)
	result, err := NewSubmitTool(p).Handle(testCtx(t), makeReq(map[string]interface{}{
		"text": "Gedanke ohne Warten",
		"wait": false,
	}))
	if err != nil || result.IsError {
		t.Fatalf("unexpected failure: %v %s", err, resultText(result))
	}
	if strings.Contains(resultText(result), `"panels"`) {
		t.Error("panels should be omitted when not waiting")
	}
}

// ─── ResetTool / CurrentTool Tests ───────────────────────────────────────────

func TestCurrentTool_NoThought(t *testing.T) {
	result, err := NewCurrentTool(newTestPage(t)).Handle(testCtx(t), makeReq(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resultText(result), "No current thought") {
		t.Errorf("text = %q", resultText(result))
	}
}

func TestCurrentTool_AfterSubmit(t *testing.T) {
	p := newTestPage(t)
	submitted := submit(t, p, "Intuition und Kognition")

	result, _ := NewCurrentTool(p).Handle(testCtx(t), makeReq(nil))
	var snap decodedSnapshot
	if err := json.Unmarshal([]byte(resultText(result)), &snap); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if snap.Thought.ID != submitted.Thought.ID {
		t.Errorf("current = %q, want %q", snap.Thought.ID, submitted.Thought.ID)
	}
}

func TestResetTool_ClearsThought(t *testing.T) {
	p := newTestPage(t)
	submit(t, p, "Semantisches Feld")

	result, err := NewResetTool(p).Handle(testCtx(t), makeReq(nil))
	if err != nil || result.IsError {
		t.Fatalf("unexpected failure: %v %s", err, resultText(result))
	}
	if p.Composer.Current() != nil {
		t.Error("current thought should be cleared")
	}
	for name, st := range p.Composer.Panels().States() {
		if st.String() != "empty" {
			t.Errorf("%s state = %s, want empty", name, st)
		}
	}
}

// ─── PanelTool Tests ─────────────────────────────────────────────────────────

func TestPanelTool_UnknownFacet(t *testing.T) {
	result, err := NewPanelTool(newTestPage(t)).Handle(testCtx(t), makeReq(map[string]interface{}{"facet": "nope"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for unknown facet")
	}
}

func TestPanelTool_ResonanzFilter(t *testing.T) {
	p := newTestPage(t)
	submit(t, p, "Resonanz im Denken")

	result, err := NewPanelTool(p).Handle(testCtx(t), makeReq(map[string]interface{}{
		"facet": "resonanzfilter",
		"wait":  true,
	}))
	if err != nil || result.IsError {
		t.Fatalf("unexpected failure: %v %s", err, resultText(result))
	}
	var v struct {
		State          string `json:"state"`
		Gesamtresonanz *int   `json:"gesamtresonanz"`
		Records        []any  `json:"records"`
	}
	if err := json.Unmarshal([]byte(resultText(result)), &v); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if v.State != "populated" || v.Gesamtresonanz == nil || len(v.Records) != 3 {
		t.Errorf("view = %+v", v)
	}
}

// ─── RegenerateTool Tests ────────────────────────────────────────────────────

func TestRegenerateTool_BeforeThought(t *testing.T) {
	result, err := NewRegenerateTool(newTestPage(t)).Handle(testCtx(t), makeReq(map[string]interface{}{"zielsyntax": "Code"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error without a populated syntax panel")
	}
}

func TestRegenerateTool_UnknownFormat(t *testing.T) {
	p := newTestPage(t)
	submit(t, p, "Code als Gedanke")

	result, _ := NewRegenerateTool(p).Handle(testCtx(t), makeReq(map[string]interface{}{"zielsyntax": "Morsecode"}))
	if !result.IsError {
		t.Error("expected tool error for unknown format")
	}
}

func TestRegenerateTool_RaisesConfidence(t *testing.T) {
	p := newTestPage(t)
	submit(t, p, "Philosophie der Syntax")

	result, err := NewRegenerateTool(p).Handle(testCtx(t), makeReq(map[string]interface{}{"zielsyntax": "Philosophisch"}))
	if err != nil || result.IsError {
		t.Fatalf("unexpected failure: %v %s", err, resultText(result))
	}
	var v struct {
		Records []struct {
			Zielsyntax string  `json:"zielsyntax"`
			Confidence float64 `json:"confidence"`
		} `json:"records"`
	}
	if err := json.Unmarshal([]byte(resultText(result)), &v); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	for _, r := range v.Records {
		if r.Zielsyntax == "Philosophisch" && (r.Confidence < 0.979 || r.Confidence > 0.981) {
			t.Errorf("Philosophisch confidence = %v, want 0.98", r.Confidence)
		}
	}
}

// ─── ChatTool / ModulesTool Tests ────────────────────────────────────────────

func TestChatTool_Blank(t *testing.T) {
	result, _ := NewChatTool(newTestPage(t)).Handle(testCtx(t), makeReq(map[string]interface{}{"question": " "}))
	if !result.IsError {
		t.Error("expected tool error for blank question")
	}
}

func TestChatTool_Transcript(t *testing.T) {
	p := newTestPage(t)
	tool := NewChatTool(p)

	if _, err := tool.Handle(testCtx(t), makeReq(map[string]interface{}{"question": "Wer bist du?"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := tool.Handle(testCtx(t), makeReq(map[string]interface{}{"question": "Und warum?", "transcript": true}))
	if err != nil || result.IsError {
		t.Fatalf("unexpected failure: %v %s", err, resultText(result))
	}
	var msgs []page.ChatMessage
	if err := json.Unmarshal([]byte(resultText(result)), &msgs); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(msgs) != 4 {
		t.Errorf("transcript length = %d, want 4", len(msgs))
	}
}

func TestModulesTool_Section(t *testing.T) {
	tool := NewModulesTool()

	result, _ := tool.Handle(testCtx(t), makeReq(map[string]interface{}{"section": "metainterface"}))
	if result.IsError || !strings.Contains(resultText(result), "MetaInterface") {
		t.Errorf("section text = %q", resultText(result))
	}
	result, _ = tool.Handle(testCtx(t), makeReq(map[string]interface{}{"section": "unbekannt"}))
	if !result.IsError {
		t.Error("expected tool error for unknown section")
	}
}

// ─── HistoryTool Tests ───────────────────────────────────────────────────────

func TestHistoryTool_Definition(t *testing.T) {
	def := NewHistoryTool(newTestJournal(t)).Definition()
	if def.Name != "resonanz_history" {
		t.Errorf("name = %q", def.Name)
	}
	if _, ok := def.InputSchema.Properties["limit"]; !ok {
		t.Error("missing 'limit' property")
	}
}

func TestHistoryTool_RecentAndSearch(t *testing.T) {
	j := newTestJournal(t)
	p := page.New(page.Config{Seed: 11, Journal: j}, nil)
	t.Cleanup(p.Close)

	submit(t, p, "Bewusstsein als Resonanzraum")
	submit(t, p, "Sprache formt Kognition")

	tool := NewHistoryTool(j)
	result, err := tool.Handle(testCtx(t), makeReq(map[string]interface{}{"limit": float64(10)}))
	if err != nil || result.IsError {
		t.Fatalf("unexpected failure: %v %s", err, resultText(result))
	}
	if !strings.Contains(resultText(result), "Found 2 thought(s)") {
		t.Errorf("recent = %q", resultText(result))
	}

	result, _ = tool.Handle(testCtx(t), makeReq(map[string]interface{}{"query": "Sprache"}))
	text := resultText(result)
	if !strings.Contains(text, "Sprache formt Kognition") || strings.Contains(text, "Resonanzraum") {
		t.Errorf("search = %q", text)
	}
}

func TestHistoryTool_Empty(t *testing.T) {
	result, _ := NewHistoryTool(newTestJournal(t)).Handle(testCtx(t), makeReq(nil))
	if !strings.Contains(resultText(result), "empty") {
		t.Errorf("text = %q", resultText(result))
	}
}
