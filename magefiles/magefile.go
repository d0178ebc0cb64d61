//go:build mage

// Package main provides build targets for relay using Mage.
//
// Usage:
//
//	mage build      Compile the relay binary to bin/
//	mage install    Install relay to GOPATH/bin
//	mage clean      Remove build artifacts
//	mage lint       Run go vet and golangci-lint
//	mage test:all   Run every test
//	mage test:unit  Run tests without the race detector, skipping examples
//	mage test:race  Run every test with the race detector
//	mage test:cover Write coverage to bin/coverage.out
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "relay"
	binaryDir  = "bin"
	cmdDir     = "./cmd/relay"
)

// Build compiles the relay binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}
