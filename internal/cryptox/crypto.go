// Package cryptox implements the primitives behind the sealed secret store:
// argon2id key derivation from the machine secret and AES-GCM sealing of
// JSON-serializable values.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
)

// DeriveSealKey derives a 32-byte AES-256 key from the machine secret and a
// per-store salt using argon2id.
//
// The parameters (t=1, m=64MiB, p=4) follow the RFC 9106 recommended
// interactive profile.
func DeriveSealKey(secret []byte, salt []byte) []byte {
	return deriveArgon2id(secret, salt)
}

// Seal serializes v to JSON and encrypts it with AES-GCM.
//
// The key must be a valid AES key length (16, 24, or 32 bytes). A new random
// 12-byte nonce is generated for each call; ciphertext and nonce are
// returned separately.
func Seal(v any, key []byte) (ciphertext, nonce []byte, err error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, 12)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// Open decrypts the given ciphertext with AES-GCM and unmarshals the
// resulting JSON into v.
//
// The key and the 12-byte nonce must be the ones used by Seal. Decryption
// failure (wrong key, tampered data) is returned as an error.
func Open(ciphertext, nonce, key []byte, v any) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}

	return json.Unmarshal(plaintext, v)
}
