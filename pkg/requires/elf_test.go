package requires

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/altlinux/py3dephell/pkg/errors"
)

func TestProbeABI(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
		code    errors.Code
	}{
		{"64-bit", "\x7fELF\x02\x01\x01", "python3.12-ABI(64bit)", ""},
		{"32-bit", "\x7fELF\x01\x01\x01", "python3.12-ABI", ""},
		{"unknown class", "\x7fELF\x07", "", errors.ErrCodeInvalidBinary},
		{"empty", "", "", errors.ErrCodeInvalidBinary},
		{"short", "\x7fEL", "", errors.ErrCodeInvalidBinary},
		{"not elf", "#!/bin/sh\n", "", errors.ErrCodeInvalidBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".so")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := ProbeABI(path, "3.12")
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Errorf("ProbeABI() error = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("ProbeABI() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ProbeABI() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProbeABI_Missing(t *testing.T) {
	_, err := ProbeABI(filepath.Join(t.TempDir(), "missing.so"), "3.12")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ProbeABI() error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
