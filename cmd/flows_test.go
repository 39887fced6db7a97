package cmd

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

// TestCallAppend tests that the call command appends a canonical line to the record
func TestCallAppend(t *testing.T) {
	// Arrange
	tempDir := createTempFundDir(t, `{"command":"terms","quarter":1,"currency":"EUR","carryPct":0.2}
`)

	oldFundDir := fundDir
	fundDir = &tempDir
	defer func() { fundDir = oldFundDir }()

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() {
		os.Stdout = oldStdout
	}()

	cmd := &callCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Set("q", "Q3")
	f.Set("a", "250000")

	// Act
	status := cmd.Execute(context.Background(), f)

	// Assert
	w.Close() // Close the write end of the pipe
	gotOutput, _ := io.ReadAll(r)

	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	if !strings.Contains(string(gotOutput), "Successfully appended call") {
		t.Errorf("Expected a success message, got: %s", string(gotOutput))
	}

	gotContent, err := os.ReadFile(filepath.Join(tempDir, "fund.jsonl"))
	if err != nil {
		t.Fatalf("Failed to read fund record: %v", err)
	}
	// The call carries the record's currency.
	wantLine := `{"command":"call","quarter":3,"currency":"EUR","amount":250000}`
	lines := strings.Split(strings.TrimSpace(string(gotContent)), "\n")
	if got := lines[len(lines)-1]; got != wantLine {
		t.Errorf("Appended line mismatch.\nGot:  %s\nWant: %s", got, wantLine)
	}
}

// TestCallRejectsMissingAmount tests the usage check of the call command
func TestCallRejectsMissingAmount(t *testing.T) {
	tempDir := t.TempDir()
	oldFundDir := fundDir
	fundDir = &tempDir
	defer func() { fundDir = oldFundDir }()

	cmd := &callCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetOutput(io.Discard)
	cmd.SetFlags(f)
	f.Set("q", "Q3")

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitUsageError {
		t.Errorf("Expected ExitUsageError, got %v", status)
	}
}

// TestTermsCreatesRecord tests that a terms event opens a brand new named record
func TestTermsCreatesRecord(t *testing.T) {
	// Arrange: an empty fund directory.
	tempDir := t.TempDir()

	oldFundDir := fundDir
	fundDir = &tempDir
	defer func() { fundDir = oldFundDir }()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() {
		os.Stdout = oldStdout
	}()

	cmd := &termsCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Set("f", "vintages/fund-ii")
	f.Set("name", "Fund II")
	f.Set("c", "USD")
	f.Set("carry", "0.25")
	f.Set("hurdle", "0.08")

	// Act
	status := cmd.Execute(context.Background(), f)

	// Assert
	w.Close()
	io.ReadAll(r)

	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}

	gotContent, err := os.ReadFile(filepath.Join(tempDir, "vintages", "fund-ii.jsonl"))
	if err != nil {
		t.Fatalf("Failed to read new fund record: %v", err)
	}
	wantLine := `{"command":"terms","quarter":1,"name":"Fund II","currency":"USD","carryPct":0.25,"hurdleRate":0.08}`
	if got := strings.TrimSpace(string(gotContent)); got != wantLine {
		t.Errorf("Record content mismatch.\nGot:  %s\nWant: %s", got, wantLine)
	}
}
