package utils

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Encryptor provides authenticated encryption for card numbers at rest.
// The key is process-wide, loaded once from configuration.
type Encryptor struct {
	aead cipher.AEAD
}

// EncryptionKeySize is the required key length in bytes.
const EncryptionKeySize = chacha20poly1305.KeySize

var errCiphertextTooShort = errors.New("ciphertext too short")

// NewEncryptor creates an XChaCha20-Poly1305 encryptor from a 32-byte key.
func NewEncryptor(key []byte) (*Encryptor, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return &Encryptor{aead: aead}, nil
}

// Encrypt seals plaintext with a random nonce, binding it to the
// associated data. The nonce is prepended to the returned ciphertext.
func (e *Encryptor) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return e.aead.Seal(nonce, nonce, plaintext, associatedData), nil
}

// Decrypt opens a ciphertext produced by Encrypt. It fails if the
// authentication tag or associated data does not verify.
func (e *Encryptor) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	if len(ciphertext) < e.aead.NonceSize() {
		return nil, errCiphertextTooShort
	}
	nonce, sealed := ciphertext[:e.aead.NonceSize()], ciphertext[e.aead.NonceSize():]
	plaintext, err := e.aead.Open(nil, nonce, sealed, associatedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}
