package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type ENV struct {
	AppEnv              string
	AppURL              string
	Port                string
	DBDriver            string
	DBHost              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBPort              string
	StorageDriver       string
	FirebaseBucket      string
	FirebaseCredentials string
	StorageLocalDir     string
	StorageSigningKey   string
	SignedURLTTL        time.Duration
	TokenTTL            time.Duration
	EmailHost           string
	EmailPort           string
	EmailUsername       string
	EmailPassword       string
	EmailFrom           string
	ContactTo           string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		AppEnv:              getEnv("APP_ENV", "development"),
		AppURL:              getEnv("APP_URL", "http://localhost:8080"),
		Port:                getEnv("APP_PORT", ":8080"),
		DBDriver:            getEnv("DB_DRIVER", "mysql"),
		DBHost:              os.Getenv("DB_HOST"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBPort:              os.Getenv("DB_PORT"),
		StorageDriver:       getEnv("STORAGE_DRIVER", "firebase"),
		FirebaseBucket:      os.Getenv("FIREBASE_BUCKET"),
		FirebaseCredentials: os.Getenv("FIREBASE_CREDENTIALS"),
		StorageLocalDir:     getEnv("STORAGE_LOCAL_DIR", "uploads"),
		StorageSigningKey:   os.Getenv("STORAGE_SIGNING_KEY"),
		SignedURLTTL:        getDuration("SIGNED_URL_TTL", 15*time.Minute),
		TokenTTL:            getDuration("TOKEN_TTL", 24*time.Hour),
		EmailHost:           os.Getenv("EMAIL_HOST"),
		EmailPort:           os.Getenv("EMAIL_PORT"),
		EmailUsername:       os.Getenv("EMAIL_USERNAME"),
		EmailPassword:       os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:           getEnv("EMAIL_FROM", os.Getenv("EMAIL_USERNAME")),
		ContactTo:           os.Getenv("CONTACT_TO"),
	}

}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid duration %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}
