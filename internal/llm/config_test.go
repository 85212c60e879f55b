package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.Equal(t, DefaultTemperature, config.Temperature)
}

func TestConfigFor(t *testing.T) {
	tests := []struct {
		provider string
		want     Provider
		wantErr  bool
	}{
		{"gemini", ProviderGemini, false},
		{"", ProviderGemini, false},
		{"openai", ProviderOpenAI, false},
		{"anthropic", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg, err := ConfigFor(tt.provider)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Provider)
			assert.NotEmpty(t, cfg.GetModel(TierStandard))
		})
	}
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultOpenAIConfig()
	newConfig := config.WithModel(TierStandard, "custom-model")

	assert.Equal(t, "gpt-4o", config.GetModel(TierStandard))
	assert.Equal(t, "custom-model", newConfig.GetModel(TierStandard))
	assert.Equal(t, "gpt-4o-mini", newConfig.GetModel(TierLite))
	assert.Equal(t, config.Temperature, newConfig.Temperature)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(t.Context(), DefaultOpenAIConfig(), "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewClient(t.Context(), &Config{Provider: "other"}, "key")
	assert.Error(t, err)
}

func TestNewOpenAIClient(t *testing.T) {
	c, err := NewOpenAIClient(DefaultOpenAIConfig(), "sk-test")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", c.GetModel(TierStandard))
	assert.NoError(t, c.Close())
}
