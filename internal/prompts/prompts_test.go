package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	set, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if err := set.Validate(); err != nil {
		t.Fatalf("embedded prompts invalid: %v", err)
	}
	if !strings.HasPrefix(set.Persona, "You are ChatGPT, a helpful AI assistant") {
		t.Errorf("unexpected persona: %q", set.Persona)
	}
	if strings.Contains(set.Persona, "\n") {
		t.Errorf("folded persona should be a single line: %q", set.Persona)
	}
	if !strings.HasPrefix(set.FallbackReply, "I apologize") {
		t.Errorf("unexpected fallback: %q", set.FallbackReply)
	}
}

func TestTitleRequest(t *testing.T) {
	set, _ := Default()
	got := set.TitleRequest("How do goroutines work?")
	want := "Create a short title for this conversation starter: 'How do goroutines work?'"
	if got != want {
		t.Errorf("TitleRequest() = %q, want %q", got, want)
	}
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte("persona: You are a terse assistant.\n"), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Persona != "You are a terse assistant." {
		t.Errorf("Persona = %q, want override", set.Persona)
	}
	if !strings.HasPrefix(set.FallbackReply, "I apologize") {
		t.Errorf("FallbackReply should keep the default, got %q", set.FallbackReply)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "blank persona", content: "persona: \"  \"\n"},
		{name: "request without placeholder", content: "title:\n  system: x\n  request: make a title\n"},
		{name: "malformed yaml", content: "persona: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prompts.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("Load should fail")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load of a missing file should fail")
	}
}
