// ABOUTME: Tests for version constants
// ABOUTME: Ensures identification strings are defined and sane
package version

import (
	"strings"
	"testing"
)

func TestVersionDefined(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if strings.Count(Version, ".") != 2 {
		t.Errorf("expected semver-shaped version, got %q", Version)
	}
}

func TestProductDefined(t *testing.T) {
	if Product == "" {
		t.Error("Product should not be empty")
	}
	if Manufacturer == "" {
		t.Error("Manufacturer should not be empty")
	}
}
