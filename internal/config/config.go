package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	AppEnv      string
	MongoURI    string
	DBName      string
	FrontendURL string
	ClientURL   string

	// Each token class signs with its own secret so a leaked short-lived
	// secret can't be used to forge tokens of another class.
	RegisterTokenSecret string
	RegisterTokenExpiry time.Duration
	AccessTokenSecret   string
	AccessTokenExpiry   time.Duration
	RefreshTokenSecret  string
	RefreshTokenExpiry  time.Duration
	ResetTokenSecret    string
	ResetTokenExpiry    time.Duration

	// Cookie lifetimes are independent of token lifetimes: the cookie can
	// outlive the token it carries, verification decides validity.
	AccessCookieMaxAge  time.Duration
	RefreshCookieMaxAge time.Duration
	CookieSameSite      string // "strict" or "none", per deployment topology

	SMTPHost  string
	SMTPPort  int
	EmailUser string
	EmailPass string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("MONGO_DB", "gocart"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		ClientURL:   getEnv("CLIENT_URL", "http://localhost:3000"),

		RegisterTokenSecret: getEnv("JWT_REGISTER_SECRET", "register-secret"),
		RegisterTokenExpiry: getDuration("JWT_REGISTER_EXPIRE", 10*time.Minute),
		AccessTokenSecret:   getEnv("JWT_ACCESS_SECRET", "access-secret"),
		AccessTokenExpiry:   getDuration("JWT_ACCESS_EXPIRE", 15*time.Minute),
		RefreshTokenSecret:  getEnv("JWT_REFRESH_SECRET", "refresh-secret"),
		RefreshTokenExpiry:  getDuration("JWT_REFRESH_EXPIRE", 7*24*time.Hour),
		ResetTokenSecret:    getEnv("JWT_RESET_SECRET", "reset-secret"),
		ResetTokenExpiry:    getDuration("JWT_RESET_EXPIRE", 10*time.Minute),

		AccessCookieMaxAge:  getDuration("ACCESS_COOKIE_MAX_AGE", 15*24*time.Hour),
		RefreshCookieMaxAge: getDuration("REFRESH_COOKIE_MAX_AGE", 70*24*time.Hour),
		CookieSameSite:      getEnv("COOKIE_SAME_SITE", "strict"),

		SMTPHost:  getEnv("SMTP_HOST", "localhost"),
		SMTPPort:  getInt("SMTP_PORT", 587),
		EmailUser: getEnv("EMAIL_HOST_USER", ""),
		EmailPass: getEnv("EMAIL_HOST_PASSWORD", ""),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
