package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateInputPath validates a path handed to the scanner on the command line
// or through stdin.
//
// The rules are intentionally loose because build roots contain all kinds of
// names; only values that can never be a real file are rejected:
//   - No empty paths
//   - No null bytes or control characters
//   - Maximum length of 4096 characters (PATH_MAX)
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters: %q", path)
		}
	}

	return nil
}

// moduleNameRegex matches dotted module names as written in import statements.
// It accepts ASCII identifiers only, which is what configuration files hold.
var moduleNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ValidateModuleName validates a dotted module name such as "os.path" given
// in an ignore list.
func ValidateModuleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "module name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidName, "module name cannot contain path separators: %q", name)
	}
	if !moduleNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid module name: %q", name)
	}
	return nil
}
