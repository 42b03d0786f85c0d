package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string

	// Auth for /api routes. Empty disables it.
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// PDF
	PDFFallbackPdftotext bool

	// Display
	DefaultPageSize int
	RawPreviewChars int

	// Fixed sample window
	SampleStart int
	SampleEnd   int

	// Analysis state
	AnalysisTTL time.Duration
	StatsWindow time.Duration

	LogLevel slog.Level
}

// source resolves a key from the environment first, then from the optional
// YAML file named by CONFIG_FILE.
type source struct {
	file map[string]string
}

func (s source) get(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return s.file[key]
}

// Load reads configuration from CONFIG_FILE (if set) and the environment.
// Environment variables win over file values.
func Load() (Config, error) {
	src, err := loadFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: src.envOr("PORT", "8090"),

		APIKey: src.get("SENTCHUNK_API_KEY"),

		MaxUploadBytes: src.envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		PDFFallbackPdftotext: src.envBool("PDF_FALLBACK_PDFTOTEXT", true),

		DefaultPageSize: src.envInt("DEFAULT_PAGE_SIZE", 10),
		RawPreviewChars: src.envInt("RAW_PREVIEW_CHARS", 2000),

		SampleStart: src.envInt("SAMPLE_START", 58),
		SampleEnd:   src.envInt("SAMPLE_END", 68),

		AnalysisTTL: src.envDuration("ANALYSIS_TTL", 1*time.Hour),
		StatsWindow: src.envDuration("STATS_WINDOW", 1*time.Hour),

		LogLevel: src.envLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 10
	}
	if cfg.RawPreviewChars <= 0 {
		cfg.RawPreviewChars = 2000
	}
	if cfg.AnalysisTTL <= 0 {
		cfg.AnalysisTTL = 1 * time.Hour
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.SampleStart < 0 {
		return fmt.Errorf("SAMPLE_START must be >= 0, got %d", c.SampleStart)
	}
	if c.SampleEnd <= c.SampleStart {
		return fmt.Errorf("SAMPLE_END (%d) must be greater than SAMPLE_START (%d)", c.SampleEnd, c.SampleStart)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	return nil
}

func loadFile(path string) (source, error) {
	if path == "" {
		return source{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return source{}, fmt.Errorf("read config file: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return source{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	file := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		file[strings.ToUpper(k)] = fmt.Sprint(v)
	}
	return source{file: file}, nil
}

func (s source) envOr(key, fallback string) string {
	if v := s.get(key); v != "" {
		return v
	}
	return fallback
}

func (s source) envInt(key string, fallback int) int {
	if v := s.get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func (s source) envInt64(key string, fallback int64) int64 {
	if v := s.get(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func (s source) envBool(key string, fallback bool) bool {
	if v := s.get(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func (s source) envDuration(key string, fallback time.Duration) time.Duration {
	if v := s.get(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func (s source) envLevel(key string, fallback slog.Level) slog.Level {
	if v := s.get(key); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			return lvl
		}
	}
	return fallback
}
