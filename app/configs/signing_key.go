package configs

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorilla/securecookie"
)

// GenerateAndPrintSigningKey creates a STORAGE_SIGNING_KEY for the local blob
// driver and writes it to .env.new_keys.
func GenerateAndPrintSigningKey() error {
	fmt.Println("Generating new signing key...")

	signingKey := securecookie.GenerateRandomKey(64)
	if signingKey == nil {
		return fmt.Errorf("error: could not generate signing key")
	}

	signingKeyBase64 := base64.URLEncoding.EncodeToString(signingKey)

	fmt.Println("\n================================================")
	fmt.Printf("STORAGE_SIGNING_KEY=%s\n", signingKeyBase64)
	fmt.Println("================================================")

	envFilePath := ".env.new_keys"
	fullPath, err := filepath.Abs(envFilePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", envFilePath, err)
	}

	file, err := os.Create(envFilePath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", envFilePath, err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "STORAGE_SIGNING_KEY=%s\n", signingKeyBase64); err != nil {
		return fmt.Errorf("failed to write key to file %s: %w", envFilePath, err)
	}

	fmt.Printf("\n✅ Key written to '%s'.\n", fullPath)
	fmt.Println("Rotating this key invalidates every signed file URL already handed out.")

	return nil
}
