package scrape

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteURLs saves an image URL list as an indented JSON array
func WriteURLs(path string, urls []string) error {
	if urls == nil {
		urls = []string{}
	}
	data, err := json.MarshalIndent(urls, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadURLs loads a list written by WriteURLs
func ReadURLs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return urls, nil
}
