// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads catalog credentials from a directory of plain-text
// files, one secret per file: the filename is the key and the trimmed file
// contents are the value.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/bibmatch/pkg/types"
)

// Key files the tool understands.
const (
	KeyEmail  = "openalex-email"
	KeyAPIKey = "openalex-api-key"
)

// Load reads every regular file in dir into a key/value map. A missing
// directory is not an error; Load returns an empty map. Unreadable files
// produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Apply copies catalog credentials from the secret map onto the config,
// leaving values the config already carries alone.
func Apply(secrets map[string]string, cfg *types.CatalogConfig) {
	if cfg.Email == "" {
		cfg.Email = secrets[KeyEmail]
	}
	if cfg.APIKey == "" {
		cfg.APIKey = secrets[KeyAPIKey]
	}
}
