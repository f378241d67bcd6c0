package resources

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/flow"
	"github.com/mark3labs/mcp-go/mcp"
)

func readText(t *testing.T, contents []mcp.ResourceContents) mcp.TextResourceContents {
	t.Helper()
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("content type = %T", contents[0])
	}
	return tc
}

func TestHandleCatalog(t *testing.T) {
	cat := catalog.Default()
	h := NewHandler(cat, nil)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = CatalogURI
	contents, err := h.HandleCatalog(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	tc := readText(t, contents)
	if tc.MIMEType != "application/json" {
		t.Errorf("mime = %s", tc.MIMEType)
	}

	var decoded struct {
		Pillars    []catalog.Pillar    `json:"pillars"`
		Indicators []catalog.Indicator `json:"indicators"`
	}
	if err := json.Unmarshal([]byte(tc.Text), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.Pillars) != catalog.PillarCount {
		t.Errorf("pillars = %d", len(decoded.Pillars))
	}
	if len(decoded.Indicators) != len(cat.Indicators) {
		t.Errorf("indicators = %d", len(decoded.Indicators))
	}
}

func TestHandleStatus(t *testing.T) {
	cat := catalog.Default()
	sess := flow.NewSession(cat, flow.SessionConfig{})
	defer sess.Close()
	for _, a := range []flow.Action{
		flow.GoTo{Mode: flow.ModeSetup},
		flow.TogglePillar{Pillar: catalog.PillarPresence},
		flow.Start{},
		flow.Begin{},
		flow.Answer{Answer: catalog.AnswerYes},
	} {
		if _, err := sess.Dispatch(a); err != nil {
			t.Fatalf("%s: %v", a.Name(), err)
		}
	}

	req := mcp.ReadResourceRequest{}
	req.Params.URI = StatusURI
	contents, err := NewHandler(cat, sess).HandleStatus(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	var st Status
	if err := json.Unmarshal([]byte(readText(t, contents).Text), &st); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if st.Mode != flow.ModeFlow || st.Role != "owner" {
		t.Errorf("mode/role = %s/%s", st.Mode, st.Role)
	}
	if got := st.Answers["owner"][catalog.PillarPresence]["P1"]; got != catalog.AnswerYes {
		t.Errorf("P1 = %q, want yes", got)
	}
	if st.Screen.Kind != flow.ScreenQuestion {
		t.Errorf("screen = %s", st.Screen.Kind)
	}
	if st.Summary != nil {
		t.Error("summary cursor should be absent outside the summary")
	}
}

func TestHandleStatus_NoSession(t *testing.T) {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = StatusURI
	contents, err := NewHandler(catalog.Default(), nil).HandleStatus(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if readText(t, contents).MIMEType != "text/plain" {
		t.Error("missing session should return a plain-text error resource")
	}
}
