package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// localKey encrypts credentials.json at rest. It only keeps passwords out of plain text;
// anyone with the binary can decrypt the file.
var localKey = []byte{
	186, 187, 74, 159, 119, 74, 184, 83, 201, 108, 45, 101, 61, 254, 84, 74,
}

var errInvalidPadding = errors.New("invalid padding")

// Credentials represents the decrypted credentials.json structure
type Credentials struct {
	Version     int                        `json:"version"`
	Credentials map[string]CredentialEntry `json:"credentials"`
}

// CredentialEntry holds the publish user of one target.
type CredentialEntry struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func credentialsPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "credentials.json"), nil
}

// LoadCredentials loads and decrypts ~/.azmigrate/credentials.json.
func LoadCredentials() (*Credentials, error) {
	path, err := credentialsPath()
	if err != nil {
		return nil, err
	}

	data, err := readFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{Version: 1, Credentials: make(map[string]CredentialEntry)}, nil
		}
		return nil, err
	}

	decrypted, err := DecryptCredentials(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt credentials: %w", err)
	}

	var credentials Credentials
	if err := json.Unmarshal(decrypted, &credentials); err != nil {
		return nil, err
	}
	if credentials.Credentials == nil {
		credentials.Credentials = make(map[string]CredentialEntry)
	}
	return &credentials, nil
}

// SaveCredentials encrypts and writes the credential store.
func SaveCredentials(credentials *Credentials) error {
	path, err := credentialsPath()
	if err != nil {
		return err
	}

	data, err := json.Marshal(credentials)
	if err != nil {
		return err
	}

	encrypted, err := EncryptCredentials(data)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, encrypted, 0600)
}

// EncryptCredentials encrypts data with AES-CBC and PKCS#7 padding. The IV is prepended.
func EncryptCredentials(data []byte) ([]byte, error) {
	block, err := aes.NewCipher(localKey)
	if err != nil {
		return nil, err
	}

	plaintext := pad(data, aes.BlockSize)
	out := make([]byte, aes.BlockSize+len(plaintext))
	iv := out[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], plaintext)
	return out, nil
}

// DecryptCredentials reverses EncryptCredentials.
func DecryptCredentials(data []byte) ([]byte, error) {
	block, err := aes.NewCipher(localKey)
	if err != nil {
		return nil, err
	}

	if len(data) < aes.BlockSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	iv := data[:aes.BlockSize]
	ciphertext := make([]byte, len(data)-aes.BlockSize)
	copy(ciphertext, data[aes.BlockSize:])
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("ciphertext is not a multiple of the block size")
	}

	cipher.NewCBCDecrypter(block, iv).CryptBlocks(ciphertext, ciphertext)
	return unpad(ciphertext, aes.BlockSize)
}

// GetCredentials returns the stored user and password of a target, or empty strings.
func GetCredentials(targetID string) (string, string, error) {
	credentials, err := LoadCredentials()
	if err != nil {
		return "", "", err
	}

	entry := credentials.Credentials[targetID]
	return entry.Username, entry.Password, nil
}

// SetCredentials stores the publish user of a target.
func SetCredentials(targetID, username, password string) error {
	credentials, err := LoadCredentials()
	if err != nil {
		return err
	}

	credentials.Credentials[targetID] = CredentialEntry{Username: username, Password: password}
	return SaveCredentials(credentials)
}

// DeleteCredentials removes the credentials of a target, if any.
func DeleteCredentials(targetID string) error {
	credentials, err := LoadCredentials()
	if err != nil {
		return err
	}
	if _, ok := credentials.Credentials[targetID]; !ok {
		return nil
	}
	delete(credentials.Credentials, targetID)
	return SaveCredentials(credentials)
}

func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data), len(data)+n)
	copy(padded, data)
	for i := 0; i < n; i++ {
		padded = append(padded, byte(n))
	}
	return padded
}

func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded plaintext length")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, errInvalidPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errInvalidPadding
		}
	}
	return data[:len(data)-n], nil
}
