package fileutil

import (
	"os"
	"path/filepath"
	"regexp"
)

// driveLetterPath matches Windows absolute paths such as C:\x or C:/x.
var driveLetterPath = regexp.MustCompile(`^[A-Za-z]:[\\/]`)

// IsAbsolute reports whether p is absolute on the host or in drive-letter form.
func IsAbsolute(p string) bool {
	return driveLetterPath.MatchString(p) || filepath.IsAbs(p)
}

// ResolvePromptPath returns the location of a prompt document.
//
// Absolute inputs are returned unchanged. Relative inputs are tried against
// workDir and then against the parent of workDir, returning the first that
// exists. When neither exists the parent-relative candidate is returned as a
// best guess so the subsequent read fails with a clear path in the error.
func ResolvePromptPath(input, workDir string) string {
	if IsAbsolute(input) {
		return input
	}

	inWorkDir := filepath.Join(workDir, input)
	if exists(inWorkDir) {
		return inWorkDir
	}

	inParent := filepath.Join(filepath.Dir(workDir), input)
	if exists(inParent) {
		return inParent
	}

	return inParent
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
