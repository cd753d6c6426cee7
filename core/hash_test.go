package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashImpl(t *testing.T) {
	tests := []struct {
		name     string
		hashType string
		wantErr  bool
	}{
		{"SHA1", "sha1", false},
		{"SHA1 uppercase", "SHA1", false},
		{"SHA256", "sha256", false},
		{"SHA512", "sha512", false},
		{"MD5", "md5", false},
		{"Murmur2 not supported", "murmur2", true},
		{"Invalid hash", "invalid-hash", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetHashImpl(tt.hashType)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, got)
			}
		})
	}
}

func TestHexStringer(t *testing.T) {
	tests := []struct {
		name     string
		hashType string
		want     string
	}{
		{"SHA1", "sha1", "f48dd853820860816c75d54d0f584dc863327a7c"},
		{"SHA256", "sha256", "916f0027a575074ce72a331777c3478d6513f786a591bd892da1a577bf2335f9"},
		{"MD5", "md5", "eb733a00c0c9d336e65691a37ab54293"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher, err := GetHashImpl(tt.hashType)
			require.NoError(t, err)

			_, err = hasher.Write([]byte("test data"))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, hasher.String())
		})
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.jar")
	require.NoError(t, os.WriteFile(path, []byte("test data"), 0644))

	got, err := HashFile(path, DefaultHashFormat)
	assert.NoError(t, err)
	assert.Equal(t, "f48dd853820860816c75d54d0f584dc863327a7c", got)

	_, err = HashFile(filepath.Join(t.TempDir(), "missing.jar"), DefaultHashFormat)
	assert.True(t, os.IsNotExist(err))

	_, err = HashFile(path, "crc32")
	assert.Error(t, err)
}

func TestChecksumMatches(t *testing.T) {
	assert.True(t, ChecksumMatches("F48DD853820860816C75D54D0F584DC863327A7C", "f48dd853820860816c75d54d0f584dc863327a7c"))
	assert.True(t, ChecksumMatches(" f48dd853820860816c75d54d0f584dc863327a7c\n", "f48dd853820860816c75d54d0f584dc863327a7c"))
	assert.False(t, ChecksumMatches("da39a3ee5e6b4b0d3255bfef95601890afd80709", "f48dd853820860816c75d54d0f584dc863327a7c"))
}
