package apikey

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrStaleTimestamp   = errors.New("timestamp outside tolerance")
	ErrInvalidSignature = errors.New("invalid signature")
)

const signaturePrefix = "sha256="

// Sign returns hex(HMAC-SHA256(secret, timestamp + "." + body)).
func Sign(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a hex signature, optionally prefixed with "sha256=",
// in constant time.
func VerifySignature(secret, timestamp string, body []byte, signature string) error {
	signature = strings.TrimPrefix(strings.TrimSpace(signature), signaturePrefix)
	got, err := hex.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}
	want, _ := hex.DecodeString(Sign(secret, timestamp, body))
	if !hmac.Equal(got, want) {
		return ErrInvalidSignature
	}
	return nil
}

// CheckTimestamp parses unix seconds and rejects values further than
// tolerance from now in either direction.
func CheckTimestamp(raw string, now time.Time, tolerance time.Duration) (time.Time, error) {
	secs, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return time.Time{}, ErrInvalidTimestamp
	}
	ts := time.Unix(secs, 0)
	skew := now.Sub(ts)
	if skew < 0 {
		skew = -skew
	}
	if skew > tolerance {
		return ts, ErrStaleTimestamp
	}
	return ts, nil
}
