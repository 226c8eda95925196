package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultRefreshTokenTTL     = 72 * time.Hour
	defaultAccessTokenTTL      = 15 * time.Minute
	defaultShareLinkSlugLength = 21
	defaultMaxSlugRetries      = 5
	defaultMaxFolderDepth      = 64
)

type Config struct {
	// database path
	DatabasePath string

	// HTTP listen port and CORS origins
	Port           string
	AllowedOrigins []string

	// token lifetimes
	RefreshTokenTTL time.Duration
	AccessTokenTTL  time.Duration

	// bcrypt cost used for user, album and share link passwords
	PasswordHashCost int

	// album and share link slug generation
	ShareLinkSlugLength int
	MaxSlugRetries      int

	// upper bound for the folder ancestor walk
	MaxFolderDepth int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvDurationOrDefault(envVar string, defaultVal time.Duration) time.Duration {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := time.ParseDuration(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %s. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "galeria.db")

	origins := strings.Split(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	hashCost := getEnvIntOrDefault("PASSWORD_HASH_COST", bcrypt.DefaultCost)
	if hashCost < bcrypt.MinCost || hashCost > bcrypt.MaxCost {
		log.Printf("Warning: PASSWORD_HASH_COST %d out of range. Using default %d", hashCost, bcrypt.DefaultCost)
		hashCost = bcrypt.DefaultCost
	}

	cfg := Config{
		DatabasePath:        dbPath,
		Port:                getEnvOrDefault("PORT", "8080"),
		AllowedOrigins:      origins,
		RefreshTokenTTL:     getEnvDurationOrDefault("REFRESH_TOKEN_TTL", defaultRefreshTokenTTL),
		AccessTokenTTL:      getEnvDurationOrDefault("ACCESS_TOKEN_TTL", defaultAccessTokenTTL),
		PasswordHashCost:    hashCost,
		ShareLinkSlugLength: getEnvIntOrDefault("SHARE_LINK_SLUG_LENGTH", defaultShareLinkSlugLength),
		MaxSlugRetries:      getEnvIntOrDefault("MAX_SLUG_RETRIES", defaultMaxSlugRetries),
		MaxFolderDepth:      getEnvIntOrDefault("MAX_FOLDER_DEPTH", defaultMaxFolderDepth),
	}

	return cfg, nil
}
