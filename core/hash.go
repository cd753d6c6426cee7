package core

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// DefaultHashFormat is what Mojang and Fabric metadata declare for every artifact
const DefaultHashFormat = "sha1"

// GetHashImpl gets an implementation of hash.Hash for the given hash type string
func GetHashImpl(hashType string) (HashStringer, error) {
	switch strings.ToLower(hashType) {
	case "sha1":
		return &hexStringer{sha1.New()}, nil
	case "sha256":
		return &hexStringer{sha256.New()}, nil
	case "sha512":
		return &hexStringer{sha512.New()}, nil
	case "md5":
		return &hexStringer{md5.New()}, nil
	}
	return nil, fmt.Errorf("hash implementation %s not found", hashType)
}

type HashStringer interface {
	hash.Hash
	String() string
}

type hexStringer struct {
	hash.Hash
}

// String is always lowercase hex
func (h *hexStringer) String() string {
	return hex.EncodeToString(h.Sum(nil))
}

// HashFile streams the file at path through the hashType implementation
func HashFile(path string, hashType string) (string, error) {
	hasher, err := GetHashImpl(hashType)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(hasher, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hasher.String(), nil
}

// ChecksumMatches compares a computed digest against a declared one, ignoring case
func ChecksumMatches(declared, actual string) bool {
	return strings.EqualFold(strings.TrimSpace(declared), actual)
}
