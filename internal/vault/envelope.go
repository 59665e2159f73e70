// Package vault implements the encrypted-payload codec: a password-derived
// AES-256-GCM envelope holding the combined sales dataset.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/salescope/salescope/internal/common"
	"github.com/salescope/salescope/internal/model"
	"golang.org/x/crypto/pbkdf2"
)

// Iterations is the PBKDF2 work factor used when encrypting. Envelopes store
// the factor they were written with, so this constant can change without
// breaking old files.
const Iterations = 600_000

const (
	saltSize = 16
	ivSize   = 12
	keySize  = 32
	tagSize  = 16
)

// ErrIncorrectPassword is the single error surfaced for every decryption
// failure. Wrong password, corrupted data and tampering are deliberately
// indistinguishable to the caller.
var ErrIncorrectPassword = errors.New("incorrect password")

// Envelope is the persisted encrypted artifact. Salt, IV and Data are
// base64-encoded binary; Data is ciphertext with the 16-byte GCM
// authentication tag appended.
type Envelope struct {
	Salt       string `json:"salt"`
	IV         string `json:"iv"`
	Iterations int    `json:"iterations"`
	Data       string `json:"data"`
}

func deriveKey(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)
}

// Encrypt packages plaintext into a fresh envelope using a key derived from
// password with PBKDF2-HMAC-SHA256 over a random 16-byte salt.
func Encrypt(plaintext []byte, password string) (*Envelope, error) {
	if password == "" {
		return nil, common.ErrEmptyPassword
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("failed to generate iv: %w", err)
	}

	key := deriveKey(password, salt, Iterations)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	// Seal emits ciphertext || tag, which is exactly the envelope's data
	// layout contract with the decrypting side.
	sealed := gcm.Seal(nil, iv, plaintext, nil)

	return &Envelope{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		IV:         base64.StdEncoding.EncodeToString(iv),
		Iterations: Iterations,
		Data:       base64.StdEncoding.EncodeToString(sealed),
	}, nil
}

// Decrypt derives the key from password using the envelope's stored salt and
// iteration count, then decrypts and verifies. Every failure mode returns
// ErrIncorrectPassword; the caller learns nothing else.
func (e *Envelope) Decrypt(password string) ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(e.Salt)
	if err != nil {
		return nil, ErrIncorrectPassword
	}
	iv, err := base64.StdEncoding.DecodeString(e.IV)
	if err != nil {
		return nil, ErrIncorrectPassword
	}
	data, err := base64.StdEncoding.DecodeString(e.Data)
	if err != nil {
		return nil, ErrIncorrectPassword
	}
	if len(iv) != ivSize || len(data) < tagSize {
		return nil, ErrIncorrectPassword
	}

	iterations := e.Iterations
	if iterations <= 0 {
		iterations = Iterations
	}
	key := deriveKey(password, salt, iterations)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrIncorrectPassword
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrIncorrectPassword
	}

	plaintext, err := gcm.Open(nil, iv, data, nil)
	if err != nil {
		return nil, ErrIncorrectPassword
	}

	return plaintext, nil
}

// DecryptPayload decrypts the envelope and parses the combined payload.
// A JSON parse failure after successful decryption is logged for
// diagnostics but surfaces identically to a wrong password, so nothing
// leaks about where the failure happened.
func (e *Envelope) DecryptPayload(password string) (*model.Payload, error) {
	plaintext, err := e.Decrypt(password)
	if err != nil {
		return nil, err
	}

	var payload model.Payload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		common.LogDebug("decrypted payload is not valid JSON", common.Fields{"error": err.Error()})
		return nil, ErrIncorrectPassword
	}

	return &payload, nil
}

// ReadFile loads an envelope from disk.
func ReadFile(path string) (*Envelope, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read envelope %s: %w", path, err)
	}

	var e Envelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("failed to parse envelope %s: %w", path, err)
	}
	if e.Salt == "" || e.IV == "" || e.Data == "" {
		return nil, fmt.Errorf("envelope %s is missing required fields", path)
	}

	return &e, nil
}

// WriteFile persists the envelope as indented JSON.
func (e *Envelope) WriteFile(path string) error {
	raw, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	raw = append(raw, '\n')

	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write envelope %s: %w", path, err)
	}

	return nil
}
