package config

import (
	"testing"
	"time"
)

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("ARIA_TEST_STR", "hello")
	t.Setenv("ARIA_TEST_INT", "42")
	t.Setenv("ARIA_TEST_BADINT", "forty")
	t.Setenv("ARIA_TEST_DUR", "45s")
	t.Setenv("ARIA_TEST_LIST", "system, weather,,gmail")

	if got := getEnv("ARIA_TEST_STR", "x"); got != "hello" {
		t.Errorf("getEnv = %q", got)
	}
	if got := getEnv("ARIA_TEST_MISSING", "x"); got != "x" {
		t.Errorf("getEnv fallback = %q", got)
	}
	if got := getInt("ARIA_TEST_INT", 0); got != 42 {
		t.Errorf("getInt = %d", got)
	}
	if got := getInt("ARIA_TEST_BADINT", 7); got != 7 {
		t.Errorf("getInt bad value = %d", got)
	}
	if got := getDuration("ARIA_TEST_DUR", time.Second); got != 45*time.Second {
		t.Errorf("getDuration = %v", got)
	}
	list := getList("ARIA_TEST_LIST", nil)
	want := []string{"system", "weather", "gmail"}
	if len(list) != len(want) {
		t.Fatalf("getList = %v", list)
	}
	for i := range want {
		if list[i] != want[i] {
			t.Errorf("getList[%d] = %q, want %q", i, list[i], want[i])
		}
	}
}

func TestValidateProvider(t *testing.T) {
	cfg := &Config{Provider: "openai", OpenAIKey: "sk-test"}
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	cfg = &Config{Provider: "openai"}
	if err := cfg.validate(); err == nil {
		t.Fatal("expected error for missing key")
	}

	cfg = &Config{Provider: "cohere"}
	if err := cfg.validate(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestModuleEnabled(t *testing.T) {
	cfg := &Config{Modules: []string{"system", "weather"}}
	if !cfg.ModuleEnabled("weather") {
		t.Error("weather should be enabled")
	}
	if cfg.ModuleEnabled("gmail") {
		t.Error("gmail should be disabled")
	}
}
