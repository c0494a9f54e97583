package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateReviewToken returns an opaque 16-character hex token issued to a
// customer when their order is approved.
func GenerateReviewToken() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate review token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GeneratePriceItemKey derives a catalog item key from the creation instant.
func GeneratePriceItemKey() string {
	return fmt.Sprintf("custom_%d", time.Now().UnixMilli())
}
