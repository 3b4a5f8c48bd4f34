package app

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
)

// Sign computes the URL-safe signature of path under key. The request
// layer compares it against the signature segment of incoming URLs.
func Sign(key, path string) string {
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(path))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil))
}

// ValidSignature reports whether signature matches path under key, in
// constant time.
func ValidSignature(key, signature, path string) bool {
	return hmac.Equal([]byte(signature), []byte(Sign(key, path)))
}
