package fundflow

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFund returns the unique fund record matching the query.
// If there is only one record found, returns it.
// If the query is meant to match all records and the list is empty returns an empty default fund.
// In any other cases it returns an error.
func FindFund(path, query string) (*Fund, error) {

	fundPaths, err := findFundPaths(path, query)
	if err != nil {
		return nil, err
	}
	switch len(fundPaths) {
	case 0:
		// nothing found, return an error by default unless the query was ""
		if query == "" {
			f := NewFund()
			// use a default name
			f.file = "fund"
			return f, nil
		}
		return nil, fmt.Errorf("could not find fund %q", query)
	case 1:
		return loadFundFile(path, fundPaths[0])
	default:
		return nil, fmt.Errorf("multiple funds found for %q", query)
	}
}

// OpenFund is FindFund for record commands: a query that matches nothing
// opens a fresh empty record under that name instead of failing, so the
// first event of a new fund creates its file.
func OpenFund(path, query string) (*Fund, error) {
	fundPaths, err := findFundPaths(path, query)
	if err != nil {
		return nil, err
	}
	switch len(fundPaths) {
	case 0:
		f := NewFund()
		if query == "" {
			query = "fund"
		}
		f.file = query
		return f, nil
	case 1:
		return loadFundFile(path, fundPaths[0])
	default:
		return nil, fmt.Errorf("multiple funds found for %q", query)
	}
}

// FindFunds discovers and loads fund records from a given directory.
// The query string can be used to filter which records are loaded.
// If query is empty, all records (.jsonl files) in the path are loaded.
// If query specifies a record name (e.g., "vintages/fund-iii"), only that record is loaded.
// A record name is its relative path from the fund directory, without the .jsonl extension.
func FindFunds(path, query string) ([]*Fund, error) {
	fundPaths, err := findFundPaths(path, query)
	if err != nil {
		return nil, err
	}

	var loaded []*Fund
	for _, fullPath := range fundPaths {
		fund, err := loadFundFile(path, fullPath)
		if err != nil {
			// Fail fast, a partial list of funds is worse than an error.
			return nil, err
		}
		loaded = append(loaded, fund)
	}

	return loaded, nil
}

// loadFundFile opens, decodes, and initializes a fund from a given file path.
// It sets the record name based on its relative path to the fund directory.
func loadFundFile(fundPath, fullPath string) (*Fund, error) {
	relPath, err := filepath.Rel(fundPath, fullPath)
	if err != nil {
		return nil, fmt.Errorf("could not determine relative path for %q: %w", fullPath, err)
	}
	name := strings.TrimSuffix(relPath, ".jsonl")

	f, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("could not open fund file %q: %w", fullPath, err)
	}
	defer f.Close()

	fund, err := DecodeFund(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode fund file %q: %w", fullPath, err)
	}
	fund.file = name
	return fund, nil
}

// SaveFund saves a single fund record to its corresponding file within the
// fund directory. It uses the record name to construct the file path (e.g.,
// a record named "vintages/fund-iii" is saved to "<path>/vintages/fund-iii.jsonl").
func SaveFund(path string, fund *Fund) error {
	name := fund.File()
	if name == "" {
		return fmt.Errorf("cannot save fund with an empty record name")
	}

	filePath := filepath.Join(path, name+".jsonl")

	// Ensure the directory for the fund file exists.
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("could not create directory for fund %q: %w", filePath, err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error opening fund file %q for writing: %w", filePath, err)
	}
	defer file.Close()

	return EncodeFund(file, fund)
}

// findFundPaths scans a directory and returns the fund files matching the query.
func findFundPaths(path, query string) ([]string, error) {
	var funds []string

	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".jsonl") {

			relPath, err := filepath.Rel(path, p)
			if err != nil {
				// This should not happen if p is in path
				return err
			}
			name := strings.TrimSuffix(relPath, ".jsonl")

			// test if the record name "matches" the query.
			// This is very very rudimentary to get started
			if query == "" || name == query {
				funds = append(funds, p)
			}
		}
		return nil
	})

	return funds, err
}
