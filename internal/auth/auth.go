// Package auth is the authentication collaborator: a PIN gate persisted
// in a single JSON file outside the ledger store. The ledger core has
// zero dependency on it; the presentation layer checks the gate before
// exposing any view.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	apperrors "centavo/internal/errors"
)

const (
	pbkdf2Iterations = 100_000
	saltLength       = 16
	keyLength        = 32
)

// Profile is the free-form user profile captured at setup.
type Profile struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Age     int    `json:"age"`
}

// record is the on-disk shape of the gate file.
type record struct {
	Salt             string  `json:"salt"`
	Hash             string  `json:"hash"`
	RecoveryQuestion string  `json:"recovery_question,omitempty"`
	RecoverySalt     string  `json:"recovery_salt,omitempty"`
	RecoveryHash     string  `json:"recovery_hash,omitempty"`
	Profile          Profile `json:"profile"`
}

// Store reads and writes the PIN gate file.
type Store struct {
	path string
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// IsFirstTime reports whether no PIN has been configured yet.
func (s *Store) IsFirstTime() bool {
	_, err := os.Stat(s.path)
	return os.IsNotExist(err)
}

func deriveKey(secret string, salt []byte) []byte {
	return pbkdf2.Key([]byte(secret), salt, pbkdf2Iterations, keyLength, sha256.New)
}

func hashSecret(secret string) (saltHex, hashHex string, err error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", "", err
	}
	return hex.EncodeToString(salt), hex.EncodeToString(deriveKey(secret, salt)), nil
}

func verifySecret(secret, saltHex, hashHex string) bool {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	stored, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}
	return hmac.Equal(deriveKey(secret, salt), stored)
}

func (s *Store) load() (*record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrPINNotSet
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rec, nil
}

func (s *Store) save(rec *record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Setup configures the PIN, an optional recovery question/answer pair,
// and the user profile. Fails if a PIN already exists.
func (s *Store) Setup(pin, question, answer string, profile Profile) error {
	if pin == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "PIN is required")
	}
	if !s.IsFirstTime() {
		return apperrors.ErrPINAlreadySet
	}

	salt, hash, err := hashSecret(pin)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rec := &record{Salt: salt, Hash: hash, Profile: profile}

	if question != "" && answer != "" {
		recoverySalt, recoveryHash, err := hashSecret(normalizeAnswer(answer))
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec.RecoveryQuestion = question
		rec.RecoverySalt = recoverySalt
		rec.RecoveryHash = recoveryHash
	}

	return s.save(rec)
}

// VerifyPIN checks the PIN against the stored derived key in constant
// time.
func (s *Store) VerifyPIN(pin string) error {
	rec, err := s.load()
	if err != nil {
		return err
	}
	if !verifySecret(pin, rec.Salt, rec.Hash) {
		return apperrors.ErrInvalidPIN
	}
	return nil
}

// RecoveryQuestion returns the configured recovery question, if any.
func (s *Store) RecoveryQuestion() (string, error) {
	rec, err := s.load()
	if err != nil {
		return "", err
	}
	return rec.RecoveryQuestion, nil
}

// ResetPIN replaces the PIN after a successful recovery-answer check.
// The recovery pair and the profile are preserved.
func (s *Store) ResetPIN(answer, newPIN string) error {
	if newPIN == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "new PIN is required")
	}

	rec, err := s.load()
	if err != nil {
		return err
	}
	if rec.RecoveryHash == "" || !verifySecret(normalizeAnswer(answer), rec.RecoverySalt, rec.RecoveryHash) {
		return apperrors.ErrRecoveryFailed
	}

	salt, hash, err := hashSecret(newPIN)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	rec.Salt = salt
	rec.Hash = hash

	return s.save(rec)
}

// Profile returns the stored user profile.
func (s *Store) Profile() (Profile, error) {
	rec, err := s.load()
	if err != nil {
		return Profile{}, err
	}
	return rec.Profile, nil
}

// normalizeAnswer makes recovery answers forgiving of case and
// surrounding whitespace.
func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
