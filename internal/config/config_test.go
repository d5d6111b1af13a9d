package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "variant-service", cfg.Name)
	assert.Equal(t, "1010", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Draft.TTL)
	assert.Equal(t, 30*time.Second, cfg.Draft.LockTTL)
	assert.Equal(t, 250, cfg.Draft.MaxVariants)
	assert.Equal(t, 0.6, cfg.Suggest.Threshold)
	assert.Equal(t, 0.75, cfg.Suggest.MinTokenSimilarity)
	assert.Empty(t, cfg.Suggest.TaxonomyFile)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DRAFT_TTL", "2h")
	t.Setenv("DRAFT_MAX_OPTION_TYPES", "3")
	t.Setenv("SUGGEST_THRESHOLD", "0.4")
	t.Setenv("TRACING_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TAXONOMY_FILE", "/etc/variant/taxonomy.json")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Draft.TTL)
	assert.Equal(t, 3, cfg.Draft.MaxOptionTypes)
	assert.Equal(t, 0.4, cfg.Suggest.Threshold)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "/etc/variant/taxonomy.json", cfg.Suggest.TaxonomyFile)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DRAFT_MAX_VARIANTS", "many")
	t.Setenv("DRAFT_LOCK_TTL", "soon")
	t.Setenv("SUGGEST_MIN_TOKEN_SIMILARITY", "high")

	cfg := Load()

	assert.Equal(t, 250, cfg.Draft.MaxVariants)
	assert.Equal(t, 30*time.Second, cfg.Draft.LockTTL)
	assert.Equal(t, 0.75, cfg.Suggest.MinTokenSimilarity)
}
