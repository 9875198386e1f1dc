//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the coursebook project using Mage.
//
// Usage:
//
//	mage build          Compile coursebook binary to bin/
//	mage test:all       Run all tests
//	mage test:race      Run all tests with the race detector
//	mage test:cover     Run all tests and write coverage.out
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install coursebook to GOPATH/bin
//	mage init           Build, then initialize the local coursebook storage
//	mage reset          Build, then clear all coursebook data
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "coursebook"
	binaryDir  = "bin"
	cmdDir     = "./cmd/coursebook"
)

// binaryPath is where Build writes the coursebook binary.
var binaryPath = filepath.Join(binaryDir, binaryName)

// Build compiles the coursebook binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", binaryPath, cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	if err := sh.Rm(coverProfile); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Init builds the binary and initializes storage with the default config.
func Init() error {
	mg.Deps(Build)
	return sh.RunV(binaryPath, "init")
}

// Reset builds the binary and clears every collection without prompting.
func Reset() error {
	mg.Deps(Build)
	return sh.RunV(binaryPath, "reset", "--yes")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, binaryPath)
}
