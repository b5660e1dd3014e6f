package cryptox

import "golang.org/x/crypto/argon2"

func deriveArgon2id(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}
