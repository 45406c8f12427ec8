//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// TestMain builds the app once into the e2e directory and removes it after
// the run.
func TestMain(m *testing.M) {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "e2e: getwd: %v\n", err)
		os.Exit(1)
	}
	binPath = filepath.Join(dir, "remotetv_e2e")

	build := exec.Command("go", "build", "-o", binPath, ".")
	build.Dir = filepath.Dir(dir)
	build.Stdout, build.Stderr = os.Stdout, os.Stderr
	if err := build.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "e2e: build remotetv: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	_ = os.Remove(binPath)
	os.Exit(code)
}
