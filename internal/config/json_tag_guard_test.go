package config

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

// TestStoreJsonTagsAreSnakeCase keeps targets.json and credentials.json keys snake_case.
func TestStoreJsonTagsAreSnakeCase(t *testing.T) {
	camelCaseJsonTag := regexp.MustCompile("json:\\\"[^\\\"]*[A-Z][^\\\"]*\\\"")

	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatalf("failed to list package files: %v", err)
	}

	scanned := 0
	for _, path := range files {
		if filepath.Base(path) == "json_tag_guard_test.go" {
			continue
		}
		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", path, err)
		}
		scanned++
		if camelCaseJsonTag.Match(b) {
			t.Errorf("camelCase json tag found in %s", path)
		}
	}
	if scanned == 0 {
		t.Fatalf("guardrail scan found no Go files under internal/config")
	}
}
