package config

import (
	"path/filepath"
	"testing"
)

func isolateEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{"ENV_FILE", "AI_API_KEY", "GEMINI_API_KEY", "API_KEY", "AI_PROVIDER", "WEDDING_DATE"} {
		t.Setenv(key, "")
	}
}

// TestLoadDefaults проверяет значения по умолчанию без ключа API.
func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)
	t.Setenv("AI_PROVIDER", "gemini")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AI.APIKey != "" {
		t.Fatalf("expected empty api key, got %q", cfg.AI.APIKey)
	}
	if cfg.AI.Model != "gemini-3-flash-preview" {
		t.Fatalf("unexpected model %q", cfg.AI.Model)
	}
	if cfg.Budget.InitialTotal != 30000 || cfg.Budget.TopCategories != 5 || cfg.Budget.SortTopCategories {
		t.Fatalf("unexpected budget config %+v", cfg.Budget)
	}
	if !cfg.Wedding.Date.IsZero() {
		t.Fatalf("expected zero wedding date, got %v", cfg.Wedding.Date)
	}
}

// TestLoadAPIKeyFallback проверяет порядок переменных с ключом.
func TestLoadAPIKeyFallback(t *testing.T) {
	isolateEnv(t)
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("API_KEY", "from-api-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.AI.APIKey != "from-api-key" {
		t.Fatalf("expected API_KEY fallback, got %q", cfg.AI.APIKey)
	}

	t.Setenv("GEMINI_API_KEY", "from-gemini")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.AI.APIKey != "from-gemini" {
		t.Fatalf("expected GEMINI_API_KEY to win, got %q", cfg.AI.APIKey)
	}
}

// TestLoadInvalidValues проверяет ошибки разбора.
func TestLoadInvalidValues(t *testing.T) {
	cases := map[string]string{
		"SERVER_PORT":               "eighty",
		"AI_TIMEOUT":                "soon",
		"BUDGET_SEED_DEMO":          "maybe",
		"BUDGET_INITIAL_TOTAL":      "lots",
		"WEDDING_DATE":              "06/14/2025",
		"AI_PROVIDER":               "openai",
		"CHART_SORT_TOP_CATEGORIES": "sorted",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			isolateEnv(t)
			t.Setenv("AI_PROVIDER", "gemini")
			t.Setenv(key, value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

// TestLoadWeddingDate проверяет разбор даты свадьбы.
func TestLoadWeddingDate(t *testing.T) {
	isolateEnv(t)
	t.Setenv("AI_PROVIDER", "groq")
	t.Setenv("WEDDING_DATE", "2025-06-14")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Wedding.Date.Format(dateLayout) != "2025-06-14" {
		t.Fatalf("unexpected date %v", cfg.Wedding.Date)
	}
	if cfg.AI.Model != "llama-3.1-8b-instant" {
		t.Fatalf("expected groq default model, got %q", cfg.AI.Model)
	}
}

// TestLoadMissingEnvFile проверяет ошибку для несуществующего ENV_FILE.
func TestLoadMissingEnvFile(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing env file")
	}
}
