package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "log/slog"
)

// Config carries everything the daemon and the TUI need to boot: provider
// selection, API keys, sampling parameters, module toggles and local paths.
// Values come from the environment, optionally seeded from a .env file.
type Config struct {
	// LLM provider selection and credentials.
	Provider    string
	OpenAIKey   string
	OpenAIModel string

	GeminiKey     string
	GeminiModel   string
	GeminiBaseURL string

	NovitaKey   string
	NovitaURL   string
	NovitaModel string

	AwanKey   string
	AwanURL   string
	AwanModel string

	// Sampling hyperparameters shared by all providers. MinP and
	// RepetitionPenalty only reach providers whose wire format takes them.
	Temperature       float64
	TopP              float64
	TopK              int
	MaxTokens         int
	MinP              float64
	RepetitionPenalty float64

	RequestTimeout time.Duration
	SocksProxy     string

	// Handler module toggles and credentials.
	Modules            []string
	WeatherKey         string
	WeatherBaseURL     string
	GoogleClientSecret string
	GoogleToken        string

	// Local behaviour.
	Timezone     string
	SocketPath   string
	EventsAddr   string
	WhisperModel string
	ChimePath    string
	DumpDir      string
	Voice        string
}

// Load reads configuration from the environment. The env file is optional;
// a missing file is not an error.
func Load(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		log.Debug("no env file loaded", "path", envFile)
	}

	cfg := &Config{
		Provider:    getEnv("ARIA_PROVIDER", "openai"),
		OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-5-nano"),

		GeminiKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/"),

		NovitaKey:   getEnv("NOVITA_API_KEY", ""),
		NovitaURL:   getEnv("NOVITA_API_URL", "https://api.novita.ai/v3/openai/chat/completions"),
		NovitaModel: getEnv("NOVITA_MODEL", "meta-llama/llama-3.3-70b-instruct"),

		AwanKey:   getEnv("AWAN_API_KEY", ""),
		AwanURL:   getEnv("AWAN_API_URL", "https://api.awanllm.com/v1/chat/completions"),
		AwanModel: getEnv("AWAN_MODEL", "Meta-Llama-3.1-70B-Instruct"),

		Temperature:       getFloat("ARIA_TEMPERATURE", 0.7),
		TopP:              getFloat("ARIA_TOP_P", 0.9),
		TopK:              getInt("ARIA_TOP_K", 50),
		MaxTokens:         getInt("ARIA_MAX_TOKENS", 512),
		MinP:              getFloat("ARIA_MIN_P", 0.0),
		RepetitionPenalty: getFloat("ARIA_REPETITION_PENALTY", 1.0),

		RequestTimeout: getDuration("ARIA_REQUEST_TIMEOUT", 30*time.Second),
		SocksProxy:     getEnv("ARIA_SOCKS_PROXY", ""),

		Modules:            getList("ARIA_MODULES", []string{"system", "weather"}),
		WeatherKey:         getEnv("OPENWEATHER_API_KEY", ""),
		WeatherBaseURL:     getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", "client_secret.json"),
		GoogleToken:        getEnv("GOOGLE_TOKEN", "token.json"),

		Timezone:     getEnv("ARIA_TIMEZONE", "Local"),
		SocketPath:   getEnv("ARIA_SOCKET", "/tmp/aria.sock"),
		EventsAddr:   getEnv("ARIA_EVENTS_ADDR", "localhost:8093"),
		WhisperModel: getEnv("ARIA_WHISPER_MODEL", "third_party/whisper.cpp/models/ggml-medium.bin"),
		ChimePath:    getEnv("ARIA_CHIME", ""),
		DumpDir:      getEnv("ARIA_DUMP_DIR", ""),
		Voice:        getEnv("ARIA_VOICE", "en"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	key := map[string]string{
		"openai": c.OpenAIKey,
		"gemini": c.GeminiKey,
		"novita": c.NovitaKey,
		"awan":   c.AwanKey,
	}
	k, ok := key[c.Provider]
	if !ok {
		return fmt.Errorf("unsupported provider %q", c.Provider)
	}
	if k == "" {
		return fmt.Errorf("no API key set for provider %q", c.Provider)
	}
	return nil
}

// Location resolves the configured timezone, falling back to the host zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn("invalid timezone, using local", "tz", c.Timezone, "err", err)
		return time.Local
	}
	return loc
}

// ModuleEnabled reports whether a handler module is switched on.
func (c *Config) ModuleEnabled(name string) bool {
	for _, m := range c.Modules {
		if m == name {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn("invalid integer in env", "key", key, "value", v)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn("invalid float in env", "key", key, "value", v)
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn("invalid duration in env", "key", key, "value", v)
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
