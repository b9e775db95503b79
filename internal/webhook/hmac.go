package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// verifySignature verifies a base64-encoded HMAC-SHA256 signature against the
// request body.
//
// This function uses constant-time comparison (crypto/subtle) to prevent
// timing attacks. All errors are generic to prevent information leakage.
//
// Returns nil if the signature is valid, error otherwise.
func verifySignature(body []byte, signature, secret string) error {
	if secret == "" {
		return fmt.Errorf("signature verification failed")
	}

	if signature == "" {
		return fmt.Errorf("signature verification failed")
	}

	// Compute HMAC-SHA256 of request body
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expectedMAC := mac.Sum(nil)

	actualMAC, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		// Generic error - don't leak format details
		return fmt.Errorf("signature verification failed")
	}

	// Constant-time comparison to prevent timing attacks
	if subtle.ConstantTimeCompare(expectedMAC, actualMAC) != 1 {
		return fmt.Errorf("signature verification failed")
	}

	return nil
}

// computeSignature computes the base64 HMAC-SHA256 signature for a body.
// Used for testing and validation.
func computeSignature(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
