// Package prompts holds the fixed texts sent to or substituted for the AI
// provider: the assistant persona, the title-generation prompt, and the
// fallback reply used when the provider fails.
package prompts

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// messagePlaceholder is replaced by the user's text in Title.Request
const messagePlaceholder = "{message}"

// Set is a complete prompt set
type Set struct {
	Persona       string      `yaml:"persona"`
	FallbackReply string      `yaml:"fallback_reply"`
	Title         TitlePrompt `yaml:"title"`
}

// TitlePrompt drives chat title suggestions
type TitlePrompt struct {
	System  string `yaml:"system"`
	Request string `yaml:"request"`
}

// TitleRequest renders the title request for a user message
func (s *Set) TitleRequest(message string) string {
	return strings.ReplaceAll(s.Title.Request, messagePlaceholder, message)
}

// Default returns the embedded prompt set
func Default() (*Set, error) {
	var set Set
	if err := yaml.Unmarshal(defaultsYAML, &set); err != nil {
		return nil, fmt.Errorf("parse embedded prompts: %w", err)
	}
	return &set, nil
}

// Load returns the embedded prompt set with any keys present in the YAML
// file at path layered on top. An empty path returns the defaults.
func Load(path string) (*Set, error) {
	set, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}
	// Unmarshal leaves fields absent from the file untouched
	if err := yaml.Unmarshal(data, set); err != nil {
		return nil, fmt.Errorf("parse prompts file %s: %w", path, err)
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("prompts file %s: %w", path, err)
	}
	return set, nil
}

// Validate reports missing prompts
func (s *Set) Validate() error {
	switch {
	case strings.TrimSpace(s.Persona) == "":
		return fmt.Errorf("persona is empty")
	case strings.TrimSpace(s.FallbackReply) == "":
		return fmt.Errorf("fallback_reply is empty")
	case strings.TrimSpace(s.Title.System) == "":
		return fmt.Errorf("title.system is empty")
	case !strings.Contains(s.Title.Request, messagePlaceholder):
		return fmt.Errorf("title.request must contain %s", messagePlaceholder)
	}
	return nil
}
