package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	LogMode   string
	JWTKey    string
	SaltRound int

	DBDriver   string // postgres, mysql, sqlite
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr      string
	RedisPassword  string
	ChatRateLimit  int // requests per minute per user, 0 disables
	AllowedOrigins string
	TrustedProxies []string // X-Forwarded-For is only honoured from these
	UploadDir      string

	AIProviderURL    string
	AIAPIKey         string
	AIModel          string
	AITimeoutSeconds int

	SendgridAPIKey string
	EmailSender    string
	EmailName      string

	EnforcePrerequisites bool
	EnableScheduler      bool
	JournalXP            int
	GrimoireEntryXP      int
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
		Port:      getEnv("PORT", "3000"),
		LogMode:   getEnv("LOG_MODE", "development"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "jakintza_ruha"),
		DBPort:     getEnv("DB_PORT", "5432"),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		ChatRateLimit:  getEnvInt("CHAT_RATE_LIMIT", 20),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		TrustedProxies: getEnvList("TRUSTED_PROXIES"),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),

		AIProviderURL:    getEnv("AI_PROVIDER_URL", "https://api.openai.com/v1"),
		AIAPIKey:         getEnv("AI_API_KEY", ""),
		AIModel:          getEnv("AI_MODEL", "gpt-4o-mini"),
		AITimeoutSeconds: getEnvInt("AI_TIMEOUT_SECONDS", 20),

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "oracle@jakintzaruha.com"),
		EmailName:      getEnv("EMAIL_NAME", "Jakintza Ruha"),

		EnforcePrerequisites: getEnvBool("ENFORCE_PREREQUISITES", false),
		EnableScheduler:      getEnvBool("ENABLE_SCHEDULER", true),
		JournalXP:            getEnvInt("JOURNAL_XP", 10),
		GrimoireEntryXP:      getEnvInt("GRIMOIRE_ENTRY_XP", 10),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.AIAPIKey == "" {
		log.Println("Warning: AI_API_KEY not set. Aionara will answer from the fallback table.")
	}
}

// Default returns a configuration with every default applied and nothing read from
// the environment.
func Default() *Config {
	return &Config{
		Port:             "3000",
		LogMode:          "development",
		JWTKey:           "defaultSecret",
		SaltRound:        4,
		DBDriver:         "sqlite",
		ChatRateLimit:    20,
		AllowedOrigins:   "*",
		UploadDir:        "./uploads",
		AIProviderURL:    "https://api.openai.com/v1",
		AIModel:          "gpt-4o-mini",
		AITimeoutSeconds: 20,
		EmailSender:      "oracle@jakintzaruha.com",
		EmailName:        "Jakintza Ruha",
		JournalXP:        10,
		GrimoireEntryXP:  10,
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

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}

// getEnvList splits a comma separated variable, dropping empty items.
func getEnvList(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
