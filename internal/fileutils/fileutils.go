// Package fileutils provides the file operations shared by statement discovery
// and report export.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Tinclon/transaction-tracker/internal/models"
)

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, models.PermissionDirectory); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// CreateFile creates or truncates a file for writing, creating parent
// directories as needed.
func CreateFile(filePath string, perm os.FileMode) (*os.File, error) {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm) // #nosec G304 -- path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}

// ListFilesWithExtension returns the names of the regular files directly in
// dirPath whose name ends with extension, compared case-insensitively, in
// lexical order. An empty extension matches every file.
func ListFilesWithExtension(dirPath, extension string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	extension = strings.ToLower(extension)
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if extension != "" && !strings.HasSuffix(strings.ToLower(entry.Name()), extension) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}
