package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/notify"
	"github.com/joho/godotenv"
)

type Config struct {
	Issuer         string // issuer claim for session tokens (default: partner-portal)
	BootstrapToken string // Optional: enables POST /v1/bootstrap while no admin exists

	SigningKeyFile string // Optional: Ed25519 PEM key; empty means sessions die on restart
	DatabaseFile   string // SQLite database file (default: ./portal.db)
	PepperFile     string // password hashing pepper (default: ./pepper)

	Env                 string        // dev, staging, prod (default: dev)
	LogLevel            string        // debug, info, warn, error (default: info)
	LogFormat           string        // json, text (default: json)
	Port                int           // HTTP port (default: 8080)
	ShutdownGracePeriod time.Duration // default: 10s

	SessionTTL     time.Duration // default: 24h
	InviteTTL      time.Duration // default: 7 days
	PasswordMaxAge time.Duration // admin password expiry, 0 disables (default: 90 days)
	PasswordPolicy domain.PasswordPolicy

	SetupURLTemplate string   // {kind} and {token} are substituted
	LoginURL         string   // linked from approval emails
	ReviewURL        string   // linked from registration alerts
	ProductName      string   // shown in emails and authenticator apps
	SupportEmail     string   // Optional
	AllowedOrigins   []string // CORS, comma separated in env

	Mail notify.Config

	ConversionKey  string // shared secret for POST /v1/track/conversions
	IPHashKey      string // HMAC key for click IP fingerprints
	VisitorCookie  string
	SecureCookies  bool
	EmailWorkers   int
	ClickRetention time.Duration // 0 keeps clicks forever

	HousekeepingInterval time.Duration // default: 1h
}

// LoadConfig reads the environment, after loading a .env file from the
// working directory when one exists. Real environment variables win.
func LoadConfig() Config {
	_ = godotenv.Load()

	policy := domain.DefaultPasswordPolicy()
	policy.MinLength = getEnvIntOrDefault("PASSWORD_MIN_LENGTH", policy.MinLength)
	policy.RequireUpper = getEnvBoolOrDefault("PASSWORD_REQUIRE_UPPER", policy.RequireUpper)
	policy.RequireLower = getEnvBoolOrDefault("PASSWORD_REQUIRE_LOWER", policy.RequireLower)
	policy.RequireDigit = getEnvBoolOrDefault("PASSWORD_REQUIRE_DIGIT", policy.RequireDigit)
	policy.RequireSpecial = getEnvBoolOrDefault("PASSWORD_REQUIRE_SPECIAL", policy.RequireSpecial)

	return Config{
		Issuer:         getEnvOrDefault("PORTAL_ISSUER", "partner-portal"),
		BootstrapToken: os.Getenv("BOOTSTRAP_TOKEN"),

		SigningKeyFile: os.Getenv("PORTAL_SIGNING_KEY_FILE"),
		DatabaseFile:   getEnvOrDefault("PORTAL_DATABASE_FILE", "portal.db"),
		PepperFile:     getEnvOrDefault("PORTAL_PEPPER_FILE", "pepper"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		SessionTTL:     getEnvDurationOrDefault("PORTAL_SESSION_TTL", 24*time.Hour),
		InviteTTL:      getEnvDurationOrDefault("PORTAL_INVITE_TTL", domain.DefaultInviteTTL),
		PasswordMaxAge: getEnvDurationOrDefault("PORTAL_PASSWORD_MAX_AGE", 90*24*time.Hour),
		PasswordPolicy: policy,

		SetupURLTemplate: getEnvOrDefault("PORTAL_SETUP_URL_TEMPLATE", domain.DefaultSetupURLTemplate),
		LoginURL:         getEnvOrDefault("PORTAL_LOGIN_URL", "http://localhost:3000/login"),
		ReviewURL:        getEnvOrDefault("PORTAL_REVIEW_URL", "http://localhost:3000/admin/members"),
		ProductName:      getEnvOrDefault("PORTAL_PRODUCT_NAME", "Partner Portal"),
		SupportEmail:     os.Getenv("PORTAL_SUPPORT_EMAIL"),
		AllowedOrigins:   getEnvList("PORTAL_ALLOWED_ORIGINS"),

		Mail: notify.Config{
			Driver:         getEnvOrDefault("MAIL_DRIVER", "log"),
			From:           getEnvOrDefault("MAIL_FROM", "no-reply@localhost"),
			FromName:       os.Getenv("MAIL_FROM_NAME"),
			SMTPHost:       os.Getenv("SMTP_HOST"),
			SMTPPort:       getEnvIntOrDefault("SMTP_PORT", 587),
			SMTPUsername:   os.Getenv("SMTP_USERNAME"),
			SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
			SMTPTLS:        getEnvOrDefault("SMTP_TLS", "mandatory"),
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			SendGridHost:   os.Getenv("SENDGRID_HOST"),
		},

		ConversionKey:  os.Getenv("PORTAL_CONVERSION_KEY"),
		IPHashKey:      os.Getenv("PORTAL_IP_HASH_KEY"),
		VisitorCookie:  getEnvOrDefault("PORTAL_VISITOR_COOKIE", "pp_visitor"),
		SecureCookies:  getEnvBoolOrDefault("PORTAL_SECURE_COOKIES", true),
		EmailWorkers:   getEnvIntOrDefault("PORTAL_EMAIL_WORKERS", 4),
		ClickRetention: getEnvDurationOrDefault("CLICK_RETENTION", 0),

		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
	}
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	var problems []string
	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, "PORT must be between 1 and 65535")
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, "PORTAL_SESSION_TTL must be positive")
	}
	if c.InviteTTL <= 0 {
		problems = append(problems, "PORTAL_INVITE_TTL must be positive")
	}
	if c.PasswordPolicy.MinLength < 8 {
		problems = append(problems, "PASSWORD_MIN_LENGTH must be at least 8")
	}
	if !strings.Contains(c.SetupURLTemplate, "{token}") {
		problems = append(problems, "PORTAL_SETUP_URL_TEMPLATE must contain {token}")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func getEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
