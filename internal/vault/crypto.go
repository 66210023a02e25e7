package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/fernet/fernet-go"
	"golang.org/x/crypto/pbkdf2"

	kerrors "envault/internal/errors"
)

const (
	// SaltLength is the size of the random salt prepended to every envelope.
	SaltLength = 16

	// KeyLength is the size of the derived symmetric key.
	KeyLength = 32

	// kdfIterations is the fixed PBKDF2 iteration count. Changing it breaks
	// compatibility with existing envelopes.
	kdfIterations = 100_000
)

// DeriveKey derives a 32-byte symmetric key from a password and salt using
// PBKDF2-HMAC-SHA256. Same inputs always yield the same key.
func DeriveKey(password, salt []byte) ([]byte, error) {
	if len(salt) != SaltLength {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", kerrors.ErrInvalidSaltLength, SaltLength, len(salt))
	}
	return pbkdf2.Key(password, salt, kdfIterations, KeyLength, sha256.New), nil
}

// Encrypt seals plaintext under a password-derived key and returns the
// envelope: a fresh random salt followed by an authenticated Fernet token.
func Encrypt(plaintext, password []byte) ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	derived, err := DeriveKey(password, salt)
	if err != nil {
		return nil, err
	}

	var key fernet.Key
	copy(key[:], derived)

	token, err := fernet.EncryptAndSign(plaintext, &key)
	if err != nil {
		return nil, fmt.Errorf("sealing envelope: %w", err)
	}

	envelope := make([]byte, 0, SaltLength+len(token))
	envelope = append(envelope, salt...)
	envelope = append(envelope, token...)
	return envelope, nil
}

// Decrypt opens an envelope produced by Encrypt. It returns
// ErrAuthenticationFailed when the password is wrong, the envelope is
// corrupted or truncated, or the envelope is too short to hold a salt.
// The underlying verification error is never surfaced, so callers cannot
// tell a bad password from tampered data.
func Decrypt(envelope, password []byte) ([]byte, error) {
	if len(envelope) <= SaltLength {
		return nil, kerrors.ErrAuthenticationFailed
	}

	derived, err := DeriveKey(password, envelope[:SaltLength])
	if err != nil {
		return nil, err
	}

	var key fernet.Key
	copy(key[:], derived)

	// TTL 0 disables the token age check: envelopes stay valid forever.
	plaintext := fernet.VerifyAndDecrypt(envelope[SaltLength:], 0, []*fernet.Key{&key})
	if plaintext == nil {
		return nil, kerrors.ErrAuthenticationFailed
	}
	return plaintext, nil
}
