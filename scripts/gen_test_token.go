package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"codeberg.org/placewise/server/internal/auth"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// load environment
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set")
	}

	userID := os.Getenv("TEST_USER_ID")
	if userID == "" {
		userID = uuid.NewString()
	}

	testEmail := os.Getenv("TEST_USER_EMAIL")
	if testEmail == "" {
		testEmail = "test@placewise.dev"
	}

	ttl := auth.DefaultTokenTTL
	if raw := os.Getenv("TEST_TOKEN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Invalid TEST_TOKEN_TTL: %v", err)
		}
		ttl = parsed
	}

	// generate JWT token
	token, err := auth.GenerateJWT(userID, testEmail, ttl)
	if err != nil {
		log.Fatalf("Failed to generate JWT: %v", err)
	}

	fmt.Printf("\n🔑 Test JWT Token (user %s, expires in %s):\n%s\n\n", userID, ttl, token)
	fmt.Printf("Export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
}
