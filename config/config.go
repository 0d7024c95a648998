package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Port      string
	DBDSN     string
	JWTSecret string

	// Currency is the ISO 4217 code used for every money value rendered
	// by this instance. There is no per-job currency.
	Currency string

	UseGCS        bool
	GCSBucket     string
	UploadDir     string
	PublicBaseURL string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := Config{
		Port:          os.Getenv("PORT"),
		DBDSN:         os.Getenv("DB_DSN"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Currency:      os.Getenv("CURRENCY"),
		GCSBucket:     os.Getenv("GCS_BUCKET"),
		UploadDir:     os.Getenv("UPLOAD_DIR"),
		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Currency == "" {
		cfg.Currency = "EUR"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}

	// Cloud Run sets K_SERVICE; either indicator switches uploads to GCS.
	cfg.UseGCS = os.Getenv("USE_GCS") == "true" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != ""

	return cfg
}

// CurrencySymbol maps the configured ISO code to a display symbol.
func (c Config) CurrencySymbol() string {
	switch c.Currency {
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "USD":
		return "$"
	default:
		return c.Currency + " "
	}
}

// Connect opens the Postgres connection. The returned handle is passed
// explicitly to everything that needs it; there is no package-level DB.
func Connect(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}
