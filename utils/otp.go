package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// OTPTTL is the absolute lifetime of a one-time password.
const OTPTTL = 5 * time.Minute

// ResetTokenTTL bounds the window between OTP verification and the
// password reset that consumes it.
const ResetTokenTTL = 10 * time.Minute

// GenerateOTP returns a 6-digit numeric one-time password.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// GenerateResetToken returns an opaque single-use token bound to a
// verified OTP session.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
