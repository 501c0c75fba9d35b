package errors

import (
	"strings"
	"unicode"
)

// maxPackageNameLen is the npm limit on package name length.
const maxPackageNameLen = 214

// ValidatePackageName validates an npm package identifier before it is put
// into a registry URL.
//
// The rules are conservative:
//   - No empty names
//   - No control characters or whitespace
//   - No path traversal sequences or backslashes
//   - Scoped names must look like @scope/name
//   - Maximum length of 214 characters
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > maxPackageNameLen {
		return New(ErrCodeInvalidPackage, "package name too long (max %d characters)", maxPackageNameLen)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters")
		}
	}

	for _, pattern := range []string{"..", "//", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	if strings.HasPrefix(name, "@") {
		scope, pkg, ok := strings.Cut(name[1:], "/")
		if !ok || scope == "" || pkg == "" || strings.Contains(pkg, "/") {
			return New(ErrCodeInvalidPackage, "scoped package name must be @scope/name: %q", name)
		}
		return nil
	}

	if strings.Contains(name, "/") {
		return New(ErrCodeInvalidPackage, "unscoped package name cannot contain '/': %q", name)
	}
	return nil
}
