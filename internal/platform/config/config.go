package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// StoreBackend selects which persistence adapter set is wired at startup.
const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Persistence
	StoreBackend string // "postgres" or "mongo"
	DatabaseURL  string // Postgres connection URL
	MongoURI     string
	MongoDB      string

	// Session tokens
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Password reset codes
	ResetCodeExpiryDuration time.Duration

	// Generation
	GeminiAPIKey string
	GeminiModel  string

	// Outbound HTTP (TTS, etc.)
	HTTPClientTimeout time.Duration
	TTSServiceURL     string
	TTSVoice          string

	// Mail (reset codes)
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	SMTPSender string

	// Image storage
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	StaticDir   string // local fallback when S3 is not configured

	// Payments
	StripeSecretKey     string
	StripeWebhookSecret string
	StripePricePlusID   string
	StripePriceProID    string
	FrontendBaseURL     string

	// Ambient services
	PosthogAPIKey string
	RedisURL      string // rate limiter store; memory store when empty

	// Admin seeding (skipped entirely when either is empty)
	AdminEmail    string
	AdminPassword string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORE_BACKEND", StorePostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DB", "descgen")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "product-desc-app")
	viper.SetDefault("RESET_CODE_EXPIRY_DURATION", "30m")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("HTTP_CLIENT_TIMEOUT", "15s")
	viper.SetDefault("TTS_SERVICE_URL", "")
	viper.SetDefault("TTS_VOICE", "vi-VN-HoaiMyNeural")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_SENDER", "")
	viper.SetDefault("S3_REGION", "")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_ACCESS_KEY", "")
	viper.SetDefault("S3_SECRET_KEY", "")
	viper.SetDefault("STATIC_DIR", "static")
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	viper.SetDefault("STRIPE_PRICE_PLUS_ID", "")
	viper.SetDefault("STRIPE_PRICE_PRO_ID", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("ADMIN_PASSWORD", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.StoreBackend = viper.GetString("STORE_BACKEND")
	if cfg.StoreBackend != StorePostgres && cfg.StoreBackend != StoreMongo {
		log.Printf("Warning: Unknown STORE_BACKEND %q. Defaulting to %s.\n", cfg.StoreBackend, StorePostgres)
		cfg.StoreBackend = StorePostgres
	}
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.MongoURI = viper.GetString("MONGODB_URI")
	cfg.MongoDB = viper.GetString("MONGODB_DB")
	if cfg.StoreBackend == StorePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	resetExpiryStr := viper.GetString("RESET_CODE_EXPIRY_DURATION")
	resetExpiry, err := time.ParseDuration(resetExpiryStr)
	if err != nil {
		resetExpiry = 30 * time.Minute
		log.Printf("Warning: Invalid value for RESET_CODE_EXPIRY_DURATION (%q). Defaulting to %s.\n", resetExpiryStr, resetExpiry)
	}
	cfg.ResetCodeExpiryDuration = resetExpiry

	cfg.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	cfg.GeminiModel = viper.GetString("GEMINI_MODEL")
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. Description generation will fail.")
	}

	clientTimeoutStr := viper.GetString("HTTP_CLIENT_TIMEOUT")
	clientTimeout, err := time.ParseDuration(clientTimeoutStr)
	if err != nil {
		clientTimeout = 15 * time.Second
	}
	cfg.HTTPClientTimeout = clientTimeout
	cfg.TTSServiceURL = viper.GetString("TTS_SERVICE_URL")
	cfg.TTSVoice = viper.GetString("TTS_VOICE")

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetInt("SMTP_PORT")
	cfg.SMTPUser = viper.GetString("SMTP_USERNAME")
	cfg.SMTPPass = viper.GetString("SMTP_PASSWORD")
	cfg.SMTPSender = viper.GetString("SMTP_SENDER")

	cfg.S3Region = viper.GetString("S3_REGION")
	cfg.S3Bucket = viper.GetString("S3_BUCKET")
	cfg.S3AccessKey = viper.GetString("S3_ACCESS_KEY")
	cfg.S3SecretKey = viper.GetString("S3_SECRET_KEY")
	cfg.StaticDir = viper.GetString("STATIC_DIR")

	cfg.StripeSecretKey = viper.GetString("STRIPE_SECRET_KEY")
	cfg.StripeWebhookSecret = viper.GetString("STRIPE_WEBHOOK_SECRET")
	cfg.StripePricePlusID = viper.GetString("STRIPE_PRICE_PLUS_ID")
	cfg.StripePriceProID = viper.GetString("STRIPE_PRICE_PRO_ID")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.RedisURL = viper.GetString("REDIS_URL")

	cfg.AdminEmail = viper.GetString("ADMIN_EMAIL")
	cfg.AdminPassword = viper.GetString("ADMIN_PASSWORD")

	return cfg, nil
}
