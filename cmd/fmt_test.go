package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

// Helper function to create a fund record file in a temporary fund directory
func createTempFundDir(t *testing.T, content string) string {
	t.Helper()
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, "fund.jsonl"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fund record: %v", err)
	}
	return tmp
}

// TestFmtCanonicalForm tests the default behavior (rewrites the record in-place)
func TestFmtCanonicalForm(t *testing.T) {
	// Arrange: events out of quarter order, calls without a currency.
	originalContent := `{"command":"call","quarter":4,"amount":500000}
{"command":"terms","quarter":1,"name":"Test Fund","currency":"EUR","carryPct":0.2}
{"command":"call","quarter":2,"amount":1000000, "memo":"first close"}
`
	expectedFormattedContent := `{"command":"terms","quarter":1,"name":"Test Fund","currency":"EUR","carryPct":0.2}
{"command":"call","quarter":2,"memo":"first close","currency":"EUR","amount":1000000}
{"command":"call","quarter":4,"currency":"EUR","amount":500000}
`

	tempDir := createTempFundDir(t, originalContent)

	cmd := &fmtCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)

	// Override global fundDir for the test
	oldFundDir := fundDir
	fundDir = &tempDir
	defer func() { fundDir = oldFundDir }()

	// Act
	status := cmd.Execute(context.Background(), f)

	// Assert
	if status != subcommands.ExitSuccess {
		t.Errorf("Expected ExitSuccess, got %v", status)
	}

	gotContent, err := os.ReadFile(filepath.Join(tempDir, "fund.jsonl"))
	if err != nil {
		t.Fatalf("Failed to read formatted fund record: %v", err)
	}

	if strings.TrimSpace(string(gotContent)) != strings.TrimSpace(expectedFormattedContent) {
		t.Errorf("Canonical form mismatch.\nGot:\n%s\nWant:\n%s", string(gotContent), expectedFormattedContent)
	}
}

// TestFmtLeavesInvalidRecordAlone tests that a record failing validation is not rewritten
func TestFmtLeavesInvalidRecordAlone(t *testing.T) {
	// Arrange: a negative capital call never validates.
	originalContent := `{"command":"terms","quarter":1,"currency":"USD","carryPct":0.2}
{"command":"call","quarter":2,"currency":"USD","amount":-1000}
`

	tempDir := createTempFundDir(t, originalContent)

	cmd := &fmtCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)

	oldFundDir := fundDir
	fundDir = &tempDir
	defer func() { fundDir = oldFundDir }()

	// Act
	cmd.Execute(context.Background(), f)

	// Assert: the file still holds the original bytes.
	gotContent, err := os.ReadFile(filepath.Join(tempDir, "fund.jsonl"))
	if err != nil {
		t.Fatalf("Failed to read fund record: %v", err)
	}
	if string(gotContent) != originalContent {
		t.Errorf("Invalid record was rewritten.\nGot:\n%s\nWant:\n%s", string(gotContent), originalContent)
	}
}
