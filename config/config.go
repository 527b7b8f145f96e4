package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/storage"
	"github.com/joho/godotenv"
)

// Config holds every setting of the service.
type Config struct {
	DatabaseURL           string
	JWTSecretKey          string
	ServerPort            int
	OrganizerPasswordHash string
	StandingsRankingKey   brackets.RankingKey
	PairingRankingKey     brackets.RankingKey
	LogLevel              slog.Level
	CORSAllowedOrigins    []string
	R2                    storage.CloudflareR2UploaderConfig
}

// ArchiveEnabled reports whether round snapshots should be uploaded to R2.
func (c *Config) ArchiveEnabled() bool {
	return !c.R2.IsZero()
}

// Load reads the configuration from environment variables, loading a .env
// file first when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := strconv.Atoi(getEnvOrDefault("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	standingsKey, err := brackets.ParseRankingKey(getEnvOrDefault("STANDINGS_RANKING_KEY", string(brackets.RankByPoints)))
	if err != nil {
		return nil, fmt.Errorf("invalid STANDINGS_RANKING_KEY: %w", err)
	}
	pairingKey, err := brackets.ParseRankingKey(getEnvOrDefault("PAIRING_RANKING_KEY", string(brackets.RankByWins)))
	if err != nil {
		return nil, fmt.Errorf("invalid PAIRING_RANKING_KEY: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnvOrDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	r2 := storage.CloudflareR2UploaderConfig{
		AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("R2_BUCKET_NAME"),
		PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}
	if !r2.IsZero() {
		if err := r2.Validate(); err != nil {
			return nil, fmt.Errorf("R2 archive partially configured: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:           dbURL,
		JWTSecretKey:          jwtKey,
		ServerPort:            port,
		OrganizerPasswordHash: os.Getenv("ORGANIZER_PASSWORD_HASH"),
		StandingsRankingKey:   standingsKey,
		PairingRankingKey:     pairingKey,
		LogLevel:              level,
		CORSAllowedOrigins:    splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		R2:                    r2,
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
