package randtoken

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	// DefaultByteLength matches the entropy used for reset and verification
	// tokens: far more than needed to defeat guessing, but not harmful.
	DefaultByteLength = 256

	// MinByteLength is the smallest accepted request, 128 bits of entropy.
	MinByteLength = 16
)

var (
	ErrLengthTooShort = errors.New("randtoken: byte length below minimum")
	ErrEntropySource  = errors.New("randtoken: entropy source failed")
)

// Generate returns byteLen cryptographically secure random bytes hex-encoded.
// It fails loudly when the entropy source errors; there is no weaker
// fallback path.
func Generate(byteLen int) (string, error) {
	if byteLen < MinByteLength {
		return "", fmt.Errorf("%w: %d < %d", ErrLengthTooShort, byteLen, MinByteLength)
	}

	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Join(ErrEntropySource, err)
	}
	return hex.EncodeToString(buf), nil
}
