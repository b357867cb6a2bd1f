package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// checksumFilename is the integrity manifest written next to the config.
const checksumFilename = ".checksums"

// scopeFiles are the files covered by integrity checking when present.
var scopeFiles = []string{"config.yaml", "credits.yaml"}

// ChecksumManifest is the on-disk integrity manifest.
type ChecksumManifest struct {
	Version     int               `yaml:"version"`
	GeneratedAt string            `yaml:"generated_at"`
	Hashes      map[string]string `yaml:"hashes"`
}

// ComputeBlake3Hash computes the BLAKE3 hash of a file.
func ComputeBlake3Hash(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// VerifyFileHash verifies a file against an expected BLAKE3 hash.
func VerifyFileHash(filePath, expectedHash string) error {
	actualHash, err := ComputeBlake3Hash(filePath)
	if err != nil {
		return fmt.Errorf("failed to compute hash: %w", err)
	}

	if actualHash != expectedHash {
		return fmt.Errorf("hash mismatch for %s: expected %s, got %s",
			filepath.Base(filePath), expectedHash, actualHash)
	}

	return nil
}

// GenerateChecksums computes BLAKE3 hashes for the scope files present in
// configDir and writes the .checksums manifest.
func GenerateChecksums(configDir string) error {
	manifest := ChecksumManifest{
		Version:     1,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Hashes:      make(map[string]string),
	}

	for _, filename := range scopeFiles {
		filePath := filepath.Join(configDir, filename)
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			continue
		}

		hash, err := ComputeBlake3Hash(filePath)
		if err != nil {
			return fmt.Errorf("failed to hash %s: %w", filename, err)
		}
		manifest.Hashes[filename] = hash
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal checksums: %w", err)
	}

	// Restrictive permissions; the manifest holds expected hashes.
	if err := os.WriteFile(filepath.Join(configDir, checksumFilename), data, 0o600); err != nil {
		return fmt.Errorf("failed to write checksums: %w", err)
	}
	return nil
}

// LoadChecksums reads the .checksums manifest from a config directory.
func LoadChecksums(configDir string) (*ChecksumManifest, error) {
	data, err := os.ReadFile(filepath.Join(configDir, checksumFilename))
	if err != nil {
		return nil, err
	}

	var manifest ChecksumManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse checksums: %w", err)
	}

	if manifest.Version != 1 {
		return nil, fmt.Errorf("unsupported checksums version: %d", manifest.Version)
	}
	return &manifest, nil
}

// VerifyConfigDir verifies the scope files against the .checksums manifest.
// A missing manifest is not an error; a fresh install has none until
// 'herald lock' writes one.
func VerifyConfigDir(configDir string) error {
	manifest, err := LoadChecksums(configDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, filename := range scopeFiles {
		filePath := filepath.Join(configDir, filename)

		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			if _, hasHash := manifest.Hashes[filename]; hasHash {
				return fmt.Errorf("scope file %s is in checksums but missing from disk", filename)
			}
			continue
		}

		expectedHash, ok := manifest.Hashes[filename]
		if !ok {
			return fmt.Errorf("scope file %s has no hash in checksums (run 'herald lock')", filename)
		}

		if err := VerifyFileHash(filePath, expectedHash); err != nil {
			return fmt.Errorf("scope file verification failed: %w\n"+
				"If you edited this file intentionally, run: herald lock", err)
		}
	}

	return nil
}
