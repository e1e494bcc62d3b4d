package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultPromptSuffixes are the file name suffixes treated as prompt documents
var DefaultPromptSuffixes = []string{".prompt.md", ".md"}

// ScanOptions configures prompt discovery
type ScanOptions struct {
	// Suffixes filters file names (case-insensitive); empty uses DefaultPromptSuffixes
	Suffixes []string
	// Recursive enables descending into subdirectories
	Recursive bool
	// ExcludeDirs lists directory names to skip in addition to hidden ones
	ExcludeDirs []string
	// MaxDepth limits recursion depth (0 = unlimited, 1 = current dir only)
	MaxDepth int
}

// ScanResult contains the outcome of a scan
type ScanResult struct {
	// Files holds absolute prompt paths, sorted
	Files []string
	// Errors holds non-fatal errors hit while walking
	Errors []error
}

// ScanPrompts walks dir and collects prompt documents matching opts.
// Unreadable subdirectories are recorded in ScanResult.Errors and skipped.
func ScanPrompts(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	wanted := opts.Suffixes
	if len(wanted) == 0 {
		wanted = DefaultPromptSuffixes
	}
	suffixes := make([]string, len(wanted))
	for i, s := range wanted {
		suffixes[i] = strings.ToLower(s)
	}

	excluded := make(map[string]bool, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		excluded[name] = true
	}

	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, walkErr))
			return nil
		}
		if path == dir {
			return nil
		}

		if d.IsDir() {
			if excluded[d.Name()] || strings.HasPrefix(d.Name(), ".") || !opts.Recursive {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 {
				rel, _ := filepath.Rel(dir, path)
				if strings.Count(rel, string(filepath.Separator))+1 >= opts.MaxDepth {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !hasSuffix(d.Name(), suffixes) {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, err))
			return nil
		}
		result.Files = append(result.Files, abs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(result.Files)
	return result, nil
}

func hasSuffix(name string, suffixes []string) bool {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}
