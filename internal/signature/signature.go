package signature

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// Valid reports whether headerSignature is a correct hex-encoded HMAC-SHA512
// of body under secret. body must be the raw request bytes exactly as
// received; hashing a re-serialized copy produces a different digest and the
// check will fail.
func Valid(body []byte, headerSignature, secret string) bool {
	sig, err := hex.DecodeString(headerSignature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(sig, mac.Sum(nil))
}

// Compute returns the hex-encoded HMAC-SHA512 of body under secret. Used by
// tests to sign payloads the way the provider does.
func Compute(body []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
