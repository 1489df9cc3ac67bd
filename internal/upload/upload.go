// Package upload validates and describes the files handed to the wizard.
// File contents are never read.
package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yildizm/tcgen/internal/common"
)

// ErrInvalidFileType is returned for extensions outside AllowedExtensions
var ErrInvalidFileType = errors.New("invalid file type: please upload Excel, CSV, or Text files only")

// AllowedExtensions lists the accepted upload types
var AllowedExtensions = []string{".xlsx", ".xls", ".csv", ".txt"}

// ValidateName checks the file extension of name
func ValidateName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%s: %w", filepath.Base(name), ErrInvalidFileType)
}

// Open validates path and returns a handle describing it
func Open(path string) (*common.FileHandle, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("no file selected")
	}
	if err := ValidateName(path); err != nil {
		return nil, err
	}

	cleanPath := filepath.Clean(expandHome(path))
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}

	return &common.FileHandle{
		Name: info.Name(),
		Path: cleanPath,
		Size: info.Size(),
	}, nil
}

// Accept string for file pickers
func Accept() string {
	return strings.Join(AllowedExtensions, ",")
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
