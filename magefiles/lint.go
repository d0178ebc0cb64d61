//go:build mage

package main

import (
	"fmt"
	"os/exec"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binLint = "golangci-lint"

// Lint runs go vet, then golangci-lint when it is installed.
func Lint() error {
	mg.Deps(Vet)
	if _, err := exec.LookPath(binLint); err != nil {
		fmt.Printf("%s not found, skipping\n", binLint)
		return nil
	}
	return sh.RunV(binLint, "run", "./...")
}

// Vet runs go vet on every package.
func Vet() error {
	return sh.RunV(binGo, "vet", "./...")
}
