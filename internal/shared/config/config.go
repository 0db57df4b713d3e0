package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"intake-backend/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	DatabaseURL     string

	ArtifactDir           string
	ArtifactMaxAge        time.Duration
	ArtifactSweepInterval time.Duration
	ArchiveLastSubmission bool

	Mail        MailConfig
	ShipStation ShipStationConfig

	InstructionsDir   string
	SubmitRatePerSec  float64
	SubmitRateBurst   int
	MaxSubmissionSize int64
}

// MailConfig describes the outbound SMTP relay and the fixed addresses used by the pharmacy.
type MailConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	PharmacyEmail string
	Timeout       time.Duration
}

// Configured reports whether SMTP credentials are present.
func (m MailConfig) Configured() bool {
	return strings.TrimSpace(m.Username) != "" && strings.TrimSpace(m.Password) != ""
}

// ShipStationConfig holds fulfillment API credentials and static order defaults.
type ShipStationConfig struct {
	APIKey         string
	APISecret      string
	BaseURL        string
	StoreID        string
	UnitPrice      float64
	DefaultCountry string
	Timeout        time.Duration
}

// Configured reports whether API credentials are present.
func (s ShipStationConfig) Configured() bool {
	return strings.TrimSpace(s.APIKey) != "" && strings.TrimSpace(s.APISecret) != ""
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	env := normalizeEnv(v.GetString("ENV"))
	dbURL := strings.TrimSpace(v.GetString("DATABASE_URL"))
	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}

	return Config{
		Port:                  v.GetString("PORT"),
		Env:                   env,
		CORSAllowOrigin:       splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		ObjectStoreType:       normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:         v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:             v.GetString("AWS_REGION"),
		S3Bucket:              v.GetString("S3_BUCKET"),
		S3Prefix:              v.GetString("S3_PREFIX"),
		SSEKMSKeyID:           v.GetString("SSE_KMS_KEY_ID"),
		DatabaseURL:           dbURL,
		ArtifactDir:           v.GetString("ARTIFACT_DIR"),
		ArtifactMaxAge:        v.GetDuration("ARTIFACT_MAX_AGE"),
		ArtifactSweepInterval: v.GetDuration("ARTIFACT_SWEEP_INTERVAL"),
		ArchiveLastSubmission: v.GetBool("ARCHIVE_LAST_SUBMISSION"),
		Mail: MailConfig{
			Host:          v.GetString("MAIL_SERVER"),
			Port:          v.GetInt("MAIL_PORT"),
			Username:      v.GetString("MAIL_USERNAME"),
			Password:      v.GetString("MAIL_PASSWORD"),
			From:          v.GetString("MAIL_DEFAULT_SENDER"),
			PharmacyEmail: v.GetString("PHARMACY_EMAIL"),
			Timeout:       v.GetDuration("MAIL_TIMEOUT"),
		},
		ShipStation: ShipStationConfig{
			APIKey:         v.GetString("SHIPSTATION_API_KEY"),
			APISecret:      v.GetString("SHIPSTATION_API_SECRET"),
			BaseURL:        strings.TrimRight(v.GetString("SHIPSTATION_BASE_URL"), "/"),
			StoreID:        v.GetString("SHIPSTATION_STORE_ID"),
			UnitPrice:      v.GetFloat64("SHIPSTATION_UNIT_PRICE"),
			DefaultCountry: v.GetString("DEFAULT_COUNTRY"),
			Timeout:        time.Duration(v.GetInt("SHIPSTATION_TIMEOUT_SECONDS")) * time.Second,
		},
		InstructionsDir:   v.GetString("INSTRUCTIONS_DIR"),
		SubmitRatePerSec:  v.GetFloat64("SUBMIT_RATE_PER_SEC"),
		SubmitRateBurst:   v.GetInt("SUBMIT_RATE_BURST"),
		MaxSubmissionSize: v.GetInt64("MAX_SUBMISSION_BYTES"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173")
	v.SetDefault("OBJECT_STORE", "local")
	v.SetDefault("LOCAL_STORE_DIR", "./data")
	v.SetDefault("ARTIFACT_DIR", "./data/artifacts")
	v.SetDefault("ARTIFACT_MAX_AGE", "1h")
	v.SetDefault("ARTIFACT_SWEEP_INTERVAL", "15m")
	v.SetDefault("ARCHIVE_LAST_SUBMISSION", true)

	v.SetDefault("MAIL_SERVER", "smtp.sendgrid.net")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("MAIL_USERNAME", "apikey")
	v.SetDefault("MAIL_DEFAULT_SENDER", "info@citylifepharmacy.com")
	v.SetDefault("PHARMACY_EMAIL", "info@citylifepharmacy.com")
	v.SetDefault("MAIL_TIMEOUT", "30s")

	v.SetDefault("SHIPSTATION_BASE_URL", "https://ssapi.shipstation.com")
	v.SetDefault("SHIPSTATION_STORE_ID", "1a4d285c-c602-4731-81d3-c5fb4661fedc")
	v.SetDefault("SHIPSTATION_UNIT_PRICE", 150.00)
	v.SetDefault("SHIPSTATION_TIMEOUT_SECONDS", 30)
	v.SetDefault("DEFAULT_COUNTRY", "CA")

	v.SetDefault("INSTRUCTIONS_DIR", "./assets/instructions")
	v.SetDefault("SUBMIT_RATE_PER_SEC", 0.2)
	v.SetDefault("SUBMIT_RATE_BURST", 5)
	v.SetDefault("MAX_SUBMISSION_BYTES", 20<<20)
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
