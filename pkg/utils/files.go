package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/ulikunitz/xz"
)

// ErrEmptyArchive is returned when an archive holds no files.
var ErrEmptyArchive = errors.New("archive is empty")

// LoadFile loads the given file and performs decompression if necessary.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	data, err = Decompress(filename, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// Decompress returns the contents of data, decompressing it according
// to the extension of name. Archives yield their first ROM file, or
// their first file when none is named as a ROM. Unknown extensions
// are returned as is.
func Decompress(name string, data []byte) ([]byte, error) {
	var decoder io.Reader
	var err error

	// try to assert the compression type from the file extension
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".xz":
		decoder, err = xz.NewReader(bytes.NewReader(data))
	case ".zip":
		var zipReader *zip.Reader
		zipReader, err = zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(zipReader.File))
		for _, f := range zipReader.File {
			if f.FileInfo().IsDir() {
				continue
			}
			names = append(names, f.Name)
		}
		i := pickROM(names)
		if i < 0 {
			return nil, ErrEmptyArchive
		}
		decoder, err = zipReader.Open(names[i])
	case ".7z":
		var r *sevenzip.Reader
		r, err = sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(r.File))
		files := make([]*sevenzip.File, 0, len(r.File))
		for _, f := range r.File {
			if f.FileInfo().IsDir() {
				continue
			}
			names = append(names, f.Name)
			files = append(files, f)
		}
		i := pickROM(names)
		if i < 0 {
			return nil, ErrEmptyArchive
		}
		decoder, err = files[i].Open()
	default:
		// return the data as is
		return data, nil
	}
	if err != nil {
		return nil, err
	}
	if c, ok := decoder.(io.Closer); ok {
		defer c.Close()
	}

	// read the decompressed data into a byte slice
	return io.ReadAll(decoder)
}

// pickROM returns the index of the first name with a ROM extension,
// the first name if there is none, or -1 if names is empty.
func pickROM(names []string) int {
	for i, name := range names {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".gb", ".gbc":
			return i
		}
	}
	if len(names) == 0 {
		return -1
	}
	return 0
}
