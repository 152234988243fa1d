//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fixtureListing mirrors the listing file format
type fixtureListing struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Price  any      `json:"price"`
	Lat    any      `json:"lat"`
	Lng    any      `json:"lng"`
	Images []string `json:"images"`
	Badge  string   `json:"badge,omitempty"`
}

// CreateTestWorkspace creates a temporary workspace directory
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteListings writes n listings named "Stay <i>" to the workspace and returns the path
func (tf *TUITestFramework) WriteListings(n int) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	ls := make([]fixtureListing, n)
	for i := range ls {
		ls[i] = fixtureListing{
			ID:     fmt.Sprintf("stay-%02d", i),
			Title:  fmt.Sprintf("Stay %d", i),
			Price:  300 - i*10,
			Lat:    38.70 + float64(i)*0.005,
			Lng:    -9.15 + float64(i)*0.005,
			Images: []string{"front.jpg", "garden.jpg"},
		}
	}
	if n > 1 {
		ls[1].Badge = "Superhost"
	}

	data, err := json.MarshalIndent(ls, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(tf.workspace, "listings.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteConfig writes a TOML config file to the workspace and returns the path
func (tf *TUITestFramework) WriteConfig(contents string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		return "", err
	}
	return path, nil
}
