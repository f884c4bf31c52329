package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// CodeMin is the smallest verification code
	CodeMin = 10000
	// CodeMax is the largest verification code
	CodeMax = 99999
)

// CodeGenerator produces verification codes
type CodeGenerator func() (string, error)

// GenerateCode returns a uniformly random five digit code in [CodeMin, CodeMax]
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(CodeMax-CodeMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+CodeMin), nil
}

// NormalizePhone trims surrounding whitespace. Phones are otherwise stored
// and matched exactly as given.
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}
