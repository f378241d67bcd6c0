package prompts

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func promptText(t *testing.T, res *mcp.GetPromptResult) string {
	t.Helper()
	if len(res.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(res.Messages))
	}
	tc, ok := res.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T", res.Messages[0].Content)
	}
	return tc.Text
}

func TestStartPrompt_Defaults(t *testing.T) {
	p := NewStartPrompt()
	if p.Definition().Name != "quietscan-start" {
		t.Errorf("name = %s", p.Definition().Name)
	}

	res, err := p.Handle(context.Background(), mcp.GetPromptRequest{})
	if err != nil {
		t.Fatal(err)
	}
	text := promptText(t, res)
	if !strings.Contains(text, "who='my-brand' and scope='full'") {
		t.Errorf("default setup step missing: %s", text)
	}
	if !strings.Contains(text, "Never answer for me") {
		t.Errorf("prompt must forbid answering on the user's behalf: %s", text)
	}
}

func TestStartPrompt_ClientCustom(t *testing.T) {
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"who": "client", "scope": "custom"}

	res, err := NewStartPrompt().Handle(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	text := promptText(t, res)
	if !strings.Contains(text, "scope='custom'") || !strings.Contains(text, "no comparison") {
		t.Errorf("client/custom prompt: %s", text)
	}
	if !strings.Contains(res.Description, "client, custom scope") {
		t.Errorf("description = %s", res.Description)
	}
}

func TestStatusPrompt(t *testing.T) {
	res, err := NewStatusPrompt().Handle(context.Background(), mcp.GetPromptRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(promptText(t, res), "qps_status") {
		t.Error("status prompt should call qps_status")
	}
}
