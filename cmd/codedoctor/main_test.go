package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codedoctor/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CODEDOCTOR_PROVIDER", "CODEDOCTOR_MODEL",
		"ANTHROPIC_API_KEY", "CLAUDE_API_KEY", "GEMINI_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestRootSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"analyze", "ask", "interactive"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestLoadConfigProviderFlag(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("GEMINI_API_KEY", "g")

	cfg, err := loadConfig(&rootFlags{provider: "gemini"})
	require.NoError(t, err)
	assert.Equal(t, config.ProviderGemini, cfg.Provider)
	assert.Equal(t, config.DefaultGeminiModel, cfg.Model)
	assert.Equal(t, "g", cfg.APIKey)
}

func TestLoadConfigAPIKeyFlagWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "env-key")

	cfg, err := loadConfig(&rootFlags{apiKey: "flag-key", model: "claude-3-haiku-20240307"})
	require.NoError(t, err)
	assert.Equal(t, "flag-key", cfg.APIKey)
	assert.Equal(t, "claude-3-haiku-20240307", cfg.Model)
}

func TestLoadConfigMissingKey(t *testing.T) {
	clearEnv(t)
	_, err := loadConfig(&rootFlags{})
	require.Error(t, err)
}

func TestLoadConfigUnknownProviderFlag(t *testing.T) {
	clearEnv(t)
	_, err := loadConfig(&rootFlags{provider: "openai"})
	require.Error(t, err)
}
