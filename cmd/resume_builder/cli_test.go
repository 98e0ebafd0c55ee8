package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getBinaryPath returns the path to the resume_builder binary for testing
func getBinaryPath(t *testing.T) string {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", "resume_builder")
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/resume_builder ./cmd/resume_builder'", binaryPath)
	}

	return binaryPath
}

func TestCLI_Help(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "--help").CombinedOutput()
	require.NoError(t, err)
	for _, name := range []string{"set", "entry", "skills", "tech-stack", "show", "reset", "render", "analyze", "import", "serve", "serve-ats"} {
		assert.Contains(t, string(output), name)
	}
}

func TestCLI_SetAndShow(t *testing.T) {
	binaryPath := getBinaryPath(t)
	store := filepath.Join(t.TempDir(), "state.db")

	output, err := exec.Command(binaryPath, "--store", store, "set", "name", "Ada Lovelace").CombinedOutput()
	require.NoError(t, err, string(output))

	output, err = exec.Command(binaryPath, "--store", store, "show", "--json").CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), `"name": "Ada Lovelace"`)
}

func TestCLI_ServeRequiresDatabase(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "serve")
	cmd.Env = append(os.Environ(), "DATABASE_URL=")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "DATABASE_URL environment variable is required")
}
