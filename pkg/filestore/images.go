package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SaveImage writes image bytes to a uniquely-named file in the images
// directory and returns the generated filename
// ({prefix}_{epoch-millis}_{random}{ext}).
func (s *FileStore) SaveImage(prefix string, data []byte, ext string) (string, error) {
	if ext == "" {
		ext = ".png"
	}
	if err := os.MkdirAll(s.imagesPath(), 0o755); err != nil {
		return "", fmt.Errorf("create images dir: %w", err)
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	name := fmt.Sprintf("%s_%d_%s%s", prefix, time.Now().UnixMilli(), suffix, ext)

	if err := os.WriteFile(filepath.Join(s.imagesPath(), name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return name, nil
}

// ReadImage returns the bytes of a stored image by filename.
func (s *FileStore) ReadImage(filename string) ([]byte, error) {
	if err := validateFilename(filename); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.imagesPath(), filename))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read image file: %w", err)
	}
	return data, nil
}

// DeleteImage removes a stored image. A missing file is not an error:
// entity deletion stays idempotent on the file side.
func (s *FileStore) DeleteImage(filename string) error {
	if err := validateFilename(filename); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.imagesPath(), filename))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete image file: %w", err)
	}
	return nil
}

// validateFilename treats the name as an opaque key: anything that looks
// like a path is rejected before it reaches the filesystem.
func validateFilename(name string) error {
	if name == "" ||
		filepath.IsAbs(name) ||
		strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) ||
		filepath.Base(filepath.Clean(name)) != name {
		return ErrUnsafeFilename
	}
	return nil
}
