package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/histora/internal/core/domain"
)

func TestLoad_BuiltinPersonas(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	for _, persona := range []string{"congressional_staffer", "research_journalist", "law_student", "general"} {
		prompt, err := store.Load(persona)
		require.NoError(t, err, persona)
		assert.NotEmpty(t, prompt, persona)
	}
}

func TestLoad_UnknownPersona(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	_, err = store.Load("pirate")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoad_InvalidName(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	for _, name := range []string{"", "../general", "General Persona"} {
		_, err := store.Load(name)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%q", name)
	}
}

func TestLoad_OverrideTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "general.txt"), []byte("custom prompt\n"), 0o644))

	store, err := NewStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load("general")
	require.NoError(t, err)
	assert.Equal(t, "custom prompt", prompt)

	// Personas without an override still resolve to the builtin.
	prompt, err = store.Load("law_student")
	require.NoError(t, err)
	assert.Contains(t, prompt, "law professor")
}
