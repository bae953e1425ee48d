// Package prompts provides the persona prompt store. The built-in
// personas are embedded at compile time; a directory of
// <persona>.txt files can override or extend them at runtime.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/histora/internal/core/domain"
	"github.com/custodia-labs/histora/internal/core/ports/driven"
)

//go:embed personas.json
var personaFiles embed.FS

// Ensure Store implements the interface.
var _ driven.PromptStore = (*Store)(nil)

// Store serves persona system prompts.
type Store struct {
	builtin   map[string]string
	overrides string // directory of <persona>.txt files, may be ""
}

// NewStore creates a store with the embedded personas. overridesDir
// may be empty; when set, a <persona>.txt file there takes precedence
// over the built-in prompt of the same name.
func NewStore(overridesDir string) (*Store, error) {
	data, err := personaFiles.ReadFile("personas.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded personas: %w", err)
	}
	var builtin map[string]string
	if err := json.Unmarshal(data, &builtin); err != nil {
		return nil, fmt.Errorf("parse embedded personas: %w", err)
	}
	return &Store{builtin: builtin, overrides: overridesDir}, nil
}

// Load returns the prompt for a persona. Unknown personas return
// domain.ErrNotFound; the query service decides the fallback.
func (s *Store) Load(name string) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("persona %q: %w", name, domain.ErrInvalidInput)
	}

	if s.overrides != "" {
		path := filepath.Join(s.overrides, name+".txt")
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data)), nil
		}
	}

	prompt, ok := s.builtin[name]
	if !ok {
		return "", fmt.Errorf("persona %q: %w", name, domain.ErrNotFound)
	}
	return prompt, nil
}

// Personas returns the built-in persona names.
func (s *Store) Personas() []string {
	names := make([]string, 0, len(s.builtin))
	for name := range s.builtin {
		names = append(names, name)
	}
	return names
}

// validName keeps persona names from escaping the overrides
// directory.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			continue
		}
		return false
	}
	return true
}
