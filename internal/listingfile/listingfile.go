// Package listingfile reads and writes listing data files.
package listingfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"stayfinder/internal/domain"
)

// ErrEmptyFile is returned when a listing file holds no JSON value
var ErrEmptyFile = errors.New("listing file is empty")

var api = sonic.ConfigStd

// document is the object form of a listing file
type document struct {
	Listings []domain.Listing `json:"listings"`
}

// Decode parses listings from r. Both a bare array and an object with a
// "listings" array are accepted.
func Decode(r io.Reader) ([]domain.Listing, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	if data[0] == '{' {
		var doc document
		if err := api.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse listings: %w", err)
		}
		return orEmpty(doc.Listings), nil
	}

	var ls []domain.Listing
	if err := api.Unmarshal(data, &ls); err != nil {
		return nil, fmt.Errorf("failed to parse listings: %w", err)
	}
	return orEmpty(ls), nil
}

// Load reads the listing file at path
func Load(path string) ([]domain.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open listing file: %w", err)
	}
	defer f.Close()

	ls, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ls, nil
}

// Encode writes listings to w as an indented JSON array
func Encode(w io.Writer, ls []domain.Listing) error {
	data, err := api.MarshalIndent(orEmpty(ls), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal listings: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write listings: %w", err)
	}
	return nil
}

// Save writes listings to path, creating the directory if needed
func Save(path string, ls []domain.Listing) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create listing directory: %w", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, ls); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write listing file: %w", err)
	}
	return nil
}

func orEmpty(ls []domain.Listing) []domain.Listing {
	if ls == nil {
		return []domain.Listing{}
	}
	return ls
}
