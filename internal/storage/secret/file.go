// Package secret implements the sealed secret store. On platforms without a
// keychain API the store is an AES-GCM sealed file: values are encrypted
// with a key derived (argon2id) from a random machine secret generated on
// first use and held next to the store with 0600 permissions.
package secret

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/daybookapp/daybook/internal/cryptox"
	"github.com/daybookapp/daybook/internal/shared"
)

// KeyUserPIN is the only key the credential manager stores here.
const KeyUserPIN = "user_pin"

const (
	storeFileName     = "secrets.sealed"
	machineKeyName    = ".machine_key"
	secretPermissions = 0o600
	saltLength        = 16
)

// container is the on-disk envelope: a fresh salt and nonce per write, and
// the sealed key→value map.
type container struct {
	Salt  string `json:"salt"`
	Nonce string `json:"nonce"`
	Data  string `json:"data"`
}

// FileStore is a Store backed by a single sealed file. All operations take
// the full-read/full-replace-write path; the mutex keeps a single writer at
// a time within the process.
type FileStore struct {
	path    string
	keyPath string
	mu      sync.Mutex
}

// NewFileStore returns a FileStore rooted in dir. The directory must exist.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		path:    filepath.Join(dir, storeFileName),
		keyPath: filepath.Join(dir, machineKeyName),
	}
}

func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

func (s *FileStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear secret store: %w", err)
	}
	return nil
}

// machineSecret returns the random per-install secret, generating it on
// first use.
func (s *FileStore) machineSecret() ([]byte, error) {
	data, err := os.ReadFile(s.keyPath)
	if err == nil {
		secret, err := hex.DecodeString(string(data))
		if err != nil {
			return nil, fmt.Errorf("corrupt machine key file: %w", err)
		}
		return secret, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read machine key: %w", err)
	}

	secret := shared.GenerateRandByteArray(32)
	if err := os.WriteFile(s.keyPath, []byte(hex.EncodeToString(secret)), secretPermissions); err != nil {
		return nil, fmt.Errorf("failed to write machine key: %w", err)
	}
	return secret, nil
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read secret store: %w", err)
	}

	var c container
	if err := unmarshalContainer(data, &c); err != nil {
		return nil, err
	}

	salt, err := hex.DecodeString(c.Salt)
	if err != nil {
		return nil, fmt.Errorf("corrupt secret store salt: %w", err)
	}
	nonce, err := hex.DecodeString(c.Nonce)
	if err != nil {
		return nil, fmt.Errorf("corrupt secret store nonce: %w", err)
	}
	ciphertext, err := hex.DecodeString(c.Data)
	if err != nil {
		return nil, fmt.Errorf("corrupt secret store data: %w", err)
	}

	machine, err := s.machineSecret()
	if err != nil {
		return nil, err
	}
	sealKey := cryptox.DeriveSealKey(machine, salt)
	defer shared.WipeByteArray(sealKey)

	values := map[string]string{}
	if err := cryptox.Open(ciphertext, nonce, sealKey, &values); err != nil {
		return nil, fmt.Errorf("failed to unseal secret store: %w", err)
	}
	return values, nil
}

// save seals the full map and atomically replaces the store file.
func (s *FileStore) save(values map[string]string) error {
	machine, err := s.machineSecret()
	if err != nil {
		return err
	}

	salt := shared.GenerateRandByteArray(saltLength)
	sealKey := cryptox.DeriveSealKey(machine, salt)
	defer shared.WipeByteArray(sealKey)

	ciphertext, nonce, err := cryptox.Seal(values, sealKey)
	if err != nil {
		return fmt.Errorf("failed to seal secret store: %w", err)
	}

	c := container{
		Salt:  hex.EncodeToString(salt),
		Nonce: hex.EncodeToString(nonce),
		Data:  hex.EncodeToString(ciphertext),
	}
	data, err := marshalContainer(c)
	if err != nil {
		return err
	}

	// A random suffix keeps a crashed writer's leftovers from colliding
	// with the next write.
	suffix, err := shared.MakeRandHexString(4)
	if err != nil {
		return fmt.Errorf("failed to generate temp file name: %w", err)
	}

	tmp := s.path + ".tmp." + suffix
	if err := os.WriteFile(tmp, data, secretPermissions); err != nil {
		return fmt.Errorf("failed to write secret store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace secret store: %w", err)
	}
	return nil
}
