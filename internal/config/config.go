package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	MinLogTailLines     = 10
	MaxLogTailLines     = 1000
	DefaultLogTailLines = 200
)

// Config holds the gateway configuration. It is loaded once at startup and
// never modified afterwards.
type Config struct {
	DockerHost     string
	DockerTimeout  time.Duration
	DockerTLS      bool
	DockerCertPath string // directory holding ca.pem, cert.pem and key.pem
	RootPath       string // public URL prefix when mounted behind a reverse proxy
	APIBasePath    string // value handed to the front end through /config.js
	LogTailLines   int
	AllowedOrigins []string
	AllowedHosts   []string
	OpenAPI        bool // /openapi.json
	SwaggerUI      bool // /docs
	ReDoc          bool // /redoc
	LogLevel       slog.Level
	ListenAddr     string
	FrontendDir    string
	AuditDBPath    string
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		DockerHost:    "tcp://docker-proxy:2375",
		DockerTimeout: 10 * time.Second,
		LogTailLines:  DefaultLogTailLines,
		AllowedHosts:  []string{"localhost", "127.0.0.1"},
		OpenAPI:       true,
		SwaggerUI:     true,
		ReDoc:         true,
		LogLevel:      slog.LevelInfo,
		ListenAddr:    "0.0.0.0:8000",
		FrontendDir:   "frontend_build",
	}
}

// Load reads an optional .env file and then the environment. Variables
// already present in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an environment lookup function
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	if val, ok := lookup("DOCKER_HOST"); ok && val != "" {
		cfg.DockerHost = val
	}

	if val, ok := lookup("DOCKER_TIMEOUT_SECONDS"); ok && val != "" {
		secs, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil || secs <= 0 {
			return cfg, fmt.Errorf("DOCKER_TIMEOUT_SECONDS must be a positive integer, got %q", val)
		}
		cfg.DockerTimeout = time.Duration(secs) * time.Second
	}

	if val, ok := lookup("DOCKER_TLS_VERIFY"); ok {
		cfg.DockerTLS = parseBool(val)
	}

	if val, ok := lookup("DOCKER_CERT_PATH"); ok {
		cfg.DockerCertPath = strings.TrimSpace(val)
	}
	if cfg.DockerTLS && cfg.DockerCertPath == "" {
		return cfg, fmt.Errorf("DOCKER_CERT_PATH is required when DOCKER_TLS_VERIFY is set")
	}

	if val, ok := lookup("ROOT_PATH"); ok {
		cfg.RootPath = normalizePrefix(val)
	}

	if val, ok := lookup("API_BASE_PATH"); ok {
		cfg.APIBasePath = val
	}

	if val, ok := lookup("LOG_TAIL_LINES"); ok && val != "" {
		lines, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return cfg, fmt.Errorf("LOG_TAIL_LINES must be an integer, got %q", val)
		}
		cfg.LogTailLines = ClampTail(lines)
	}

	if val, ok := lookup("ALLOWED_ORIGINS"); ok {
		cfg.AllowedOrigins = ParseCSV(val)
	}

	if val, ok := lookup("ALLOWED_HOSTS"); ok {
		cfg.AllowedHosts = ParseCSV(val)
	}

	// ENABLE_DOCS switches all three doc routes, the specific variables win
	if val, ok := lookup("ENABLE_DOCS"); ok {
		on := parseBool(val)
		cfg.OpenAPI, cfg.SwaggerUI, cfg.ReDoc = on, on, on
	}
	for name, field := range map[string]*bool{
		"ENABLE_OPENAPI":    &cfg.OpenAPI,
		"ENABLE_SWAGGER_UI": &cfg.SwaggerUI,
		"ENABLE_REDOC":      &cfg.ReDoc,
	} {
		if val, ok := lookup(name); ok {
			*field = parseBool(val)
		}
	}

	if val, ok := lookup("LOG_LEVEL"); ok && val != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(levelAlias(val))); err != nil {
			return cfg, fmt.Errorf("invalid LOG_LEVEL %q: %w", val, err)
		}
	}

	if val, ok := lookup("LISTEN_ADDR"); ok && val != "" {
		cfg.ListenAddr = val
	}

	if val, ok := lookup("FRONTEND_DIR"); ok && val != "" {
		cfg.FrontendDir = val
	}

	if val, ok := lookup("AUDIT_DB_PATH"); ok {
		cfg.AuditDBPath = strings.TrimSpace(val)
	}

	return cfg, nil
}

// ClampTail forces a log tail bound into [MinLogTailLines, MaxLogTailLines]
func ClampTail(n int) int {
	return max(MinLogTailLines, min(MaxLogTailLines, n))
}

// ParseCSV splits a comma separated list, dropping blank entries
func ParseCSV(raw string) []string {
	var out []string
	for _, entry := range strings.Split(raw, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

func parseBool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// levelAlias accepts the WARNING and CRITICAL spellings used by other services
func levelAlias(val string) string {
	switch v := strings.ToUpper(strings.TrimSpace(val)); v {
	case "WARNING":
		return "WARN"
	case "CRITICAL", "FATAL":
		return "ERROR"
	default:
		return v
	}
}

// normalizePrefix turns "api/", "/api/" and "/api" into "/api". "/" becomes "".
func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
