package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func ComparePasswords(hashedPassword string, plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
}

func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}

// referral codes drop lookalike characters so they survive print and voice
const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func GenerateReferralCode(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid code length")
	}

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, b := range bytes {
		sb.WriteByte(referralAlphabet[int(b)%len(referralAlphabet)])
	}
	return sb.String(), nil
}
