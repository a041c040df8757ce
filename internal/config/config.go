package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  No .env file found, falling back to system environment variables")
	} else {
		log.Println("✅ .env file loaded")
	}
}

// Get returns an environment variable or the given default when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
