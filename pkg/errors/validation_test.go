package errors

import (
	"strings"
	"testing"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		wantErr bool
	}{
		{"simple", "left-pad", false},
		{"dotted", "lodash.merge", false},
		{"scoped", "@react-native-community/netinfo", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 215), true},
		{"max length", strings.Repeat("a", 214), false},
		{"traversal", "../etc/passwd", true},
		{"backslash", "foo\\bar", true},
		{"space", "left pad", true},
		{"control", "left\x00pad", true},
		{"scope without name", "@scope/", true},
		{"scope without slash", "@scope", true},
		{"nested scope", "@scope/a/b", true},
		{"unscoped slash", "foo/bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.pkg)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.pkg, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPackage) {
				t.Errorf("ValidatePackageName(%q) code = %v, want %v", tt.pkg, GetCode(err), ErrCodeInvalidPackage)
			}
		})
	}
}
