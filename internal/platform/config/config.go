package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	MongoURI      string
	MongoDatabase string
	Port          string
	IsProduction  bool

	// JWT config
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Refresh Token Config
	RefreshTokenSecret         string
	RefreshTokenExpiryDuration time.Duration

	// Password hashing cost factor
	BcryptCost int

	// CORS
	CORSOrigin string

	// Rate limiting (formatted as "<limit>-<period>", e.g. "100-15M")
	APIRateLimit   string
	LoginRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DATABASE", "article-archiver")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "fallback-secret-key")
	viper.SetDefault("JWT_EXPIRY_DURATION", "168h")
	viper.SetDefault("JWT_ISSUER", "article-archiver")
	viper.SetDefault("JWT_REFRESH_SECRET", "")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "720h")
	viper.SetDefault("BCRYPT_SALT_ROUNDS", 12)
	viper.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	viper.SetDefault("API_RATE_LIMIT", "100-15M")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.MongoURI = viper.GetString("MONGODB_URI")
	cfg.MongoDatabase = viper.GetString("MONGODB_DATABASE")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "fallback-secret-key" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Access token expiry (e.g. "168h" for 7 days)
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 24 * 7
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	// Refresh tokens fall back to the primary signing secret when no
	// dedicated secret is configured.
	cfg.RefreshTokenSecret = viper.GetString("JWT_REFRESH_SECRET")
	if cfg.RefreshTokenSecret == "" {
		log.Println("Warning: JWT_REFRESH_SECRET not set. Falling back to JWT_SECRET for refresh tokens.")
		cfg.RefreshTokenSecret = cfg.JWTSecret
	}

	refreshExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshExpiryDuration, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		refreshExpiryDuration = time.Hour * 24 * 30
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshExpiryStr, refreshExpiryDuration.String())
	}
	cfg.RefreshTokenExpiryDuration = refreshExpiryDuration

	cfg.BcryptCost = viper.GetInt("BCRYPT_SALT_ROUNDS")
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		log.Printf("Warning: BCRYPT_SALT_ROUNDS out of range (%d). Defaulting to 12.\n", cfg.BcryptCost)
		cfg.BcryptCost = 12
	}

	cfg.CORSOrigin = viper.GetString("CORS_ORIGIN")
	cfg.APIRateLimit = viper.GetString("API_RATE_LIMIT")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	return cfg, nil
}
