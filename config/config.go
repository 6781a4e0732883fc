package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	DBDialect  string // postgres, mysql or sqlite
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// Payment gateway (hosted payment links)
	PaymentApiURL       string
	PaymentApiKey       string
	PaymentFallbackLink string
	WebhookSecret       string

	// Email notifications
	SendgridApiKey string
	EmailSender    string

	// Abandoned checkouts are swept to FAILED after this many hours
	PendingPurchaseTTLHours int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		DBDialect:  getEnv("DB_DIALECT", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "lms.db"),
		DBPort:     getEnv("DB_PORT", "5432"),

		PaymentApiURL:       getEnv("PAYMENT_API_URL", ""),
		PaymentApiKey:       getEnv("PAYMENT_API_KEY", ""),
		PaymentFallbackLink: getEnv("PAYMENT_FALLBACK_LINK", "https://rzp.io/l/8SjZQ5sW"),
		WebhookSecret:       getEnv("WEBHOOK_SECRET", "defaultSecret"),

		SendgridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@lms.local"),

		PendingPurchaseTTLHours: getEnvInt("PENDING_PURCHASE_TTL_HOURS", 48),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.WebhookSecret == "defaultSecret" {
		log.Println("Warning: Using default WEBHOOK_SECRET. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
