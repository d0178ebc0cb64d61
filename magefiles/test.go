//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets.
type Test mg.Namespace

// All runs every test, examples included.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Unit runs tests only, skipping runnable examples.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "-run", "^Test", "./...")
}

// Race runs every test with the race detector. The resolver's batch
// lookup and the SQLite backend are the concurrent paths it covers.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover writes a coverage profile to bin/coverage.out and prints the
// per-function summary.
func (Test) Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, "coverage.out")
	if err := sh.RunV(binGo, "test", "-coverprofile", profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func", profile)
}
