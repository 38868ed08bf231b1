package helpers

import (
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUser  contextKey = "userObject"
	ContextKeyToken contextKey = "accessToken"
)

// FormatValidationErrors turns validator errors into a field → message map.
// Keys are json names; nested fields are dotted ("address.zipcode").
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := fieldKey(err)
		label := attributeLabel(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("The %s field is required.", label)
		case "email":
			errorMessages[field] = fmt.Sprintf("The %s must be a valid email address.", label)
		case "min":
			errorMessages[field] = fmt.Sprintf("The %s must be at least %s characters.", label, err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("The %s may not be greater than %s characters.", label, err.Param())
		case "eqfield":
			errorMessages[field] = fmt.Sprintf("The %s does not match.", label)
		case "taxid", "zipcode":
			errorMessages[field] = fmt.Sprintf("The %s format is invalid.", label)
		default:
			errorMessages[field] = fmt.Sprintf("The %s is invalid.", label)
		}
	}
	return errorMessages
}

func fieldKey(err validator.FieldError) string {
	ns := err.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return err.Field()
}

func attributeLabel(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// GenerateTokenParts returns a random selector and verifier and the plain
// token "<selector>.<verifier>" handed to the client.
func GenerateTokenParts() (selector string, verifier string, tokenString string, err error) {
	selectorBytes := securecookie.GenerateRandomKey(16)
	if selectorBytes == nil {
		return "", "", "", fmt.Errorf("failed to generate selector")
	}
	selector = base64.RawURLEncoding.EncodeToString(selectorBytes)

	verifierBytes := securecookie.GenerateRandomKey(32)
	if verifierBytes == nil {
		return "", "", "", fmt.Errorf("failed to generate verifier")
	}
	verifier = base64.RawURLEncoding.EncodeToString(verifierBytes)

	tokenString = fmt.Sprintf("%s.%s", selector, verifier)

	return selector, verifier, tokenString, nil
}

// SplitToken is the inverse of GenerateTokenParts.
func SplitToken(token string) (selector string, verifier string, ok bool) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func PasswordCompare(hashPass string, password []byte) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashPass), password)
	if err != nil {
		log.Printf("PasswordCompare: password does not match or error: %v", err)
		return false
	}
	return true
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return "", err
	}
	return string(bytes), nil
}

// NilIfEmpty maps "" to nil for optional columns.
func NilIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
