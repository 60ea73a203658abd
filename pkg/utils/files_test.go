package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

var rom = bytes.Repeat([]byte{0x00, 0xC3, 0x50, 0x01}, 64)

func gzipped(t *testing.T) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(rom)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func xzipped(t *testing.T) []byte {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(rom)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zipped(t *testing.T, files map[string][]byte, order ...string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range order {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(files[name])
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDecompress(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"game.gb", rom},
		{"game", rom},
		{"game.GB.gz", gzipped(t)},
		{"game.gb.xz", xzipped(t)},
		{"game.zip", zipped(t, map[string][]byte{"readme.txt": []byte("hello"), "game.gbc": rom}, "readme.txt", "game.gbc")},
		{"other.zip", zipped(t, map[string][]byte{"game.bin": rom}, "game.bin")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decompress(tt.name, tt.data)
			require.NoError(t, err)
			assert.Equal(t, rom, got)
		})
	}
}

func TestDecompress_Errors(t *testing.T) {
	_, err := Decompress("empty.zip", zipped(t, nil))
	assert.ErrorIs(t, err, ErrEmptyArchive)

	for _, name := range []string{"bad.gz", "bad.xz", "bad.zip", "bad.7z"} {
		_, err := Decompress(name, []byte("not an archive"))
		assert.Error(t, err, name)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.gb.gz")
	require.NoError(t, os.WriteFile(path, gzipped(t), 0o644))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, rom, got)

	_, err = LoadFile(filepath.Join(dir, "missing.gb"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(1, -5, 10))
	assert.Equal(t, 10, Clamp(1, 50, 10))
	assert.Equal(t, uint16(7), Clamp[uint16](0, 7, 0xFFFF))
	assert.Equal(t, 0.5, Clamp(0.0, 0.5, 1.0))
}
