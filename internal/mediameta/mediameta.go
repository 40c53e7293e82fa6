// File: internal/mediameta/mediameta.go

// Package mediameta reads sidecar metadata files. A sidecar is a UTF-8 .txt
// next to the media file: the first non-empty line is the title, and the
// remaining lines hold the description with #hashtag tokens mixed in.
package mediameta

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Meta is the parsed content of one sidecar file.
type Meta struct {
	Title       string
	Description string
	// Tags preserve the order they appear in the file, # stripped,
	// duplicates removed.
	Tags []string
}

// SidecarPath returns the conventional sidecar path for a media file:
// same directory, same base name, .txt extension.
func SidecarPath(mediaPath string) string {
	if i := strings.LastIndex(mediaPath, "."); i > strings.LastIndexAny(mediaPath, `/\`) {
		return mediaPath[:i] + ".txt"
	}
	return mediaPath + ".txt"
}

// Load parses a sidecar file.
func Load(path string) (*Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sidecar %q: %w", path, err)
	}
	defer f.Close()

	meta := &Meta{}
	seen := make(map[string]bool)
	var descLines []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if meta.Title == "" {
			meta.Title = line
			continue
		}

		var plain []string
		for _, token := range strings.Fields(line) {
			if tag, ok := strings.CutPrefix(token, "#"); ok && tag != "" {
				if !seen[tag] {
					seen[tag] = true
					meta.Tags = append(meta.Tags, tag)
				}
				continue
			}
			plain = append(plain, token)
		}
		if len(plain) > 0 {
			descLines = append(descLines, strings.Join(plain, " "))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("sidecar %q: %w", path, err)
	}

	meta.Description = strings.Join(descLines, "\n")
	return meta, nil
}
