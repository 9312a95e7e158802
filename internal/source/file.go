package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// File reads tables from the local filesystem.
type File struct {
	dir string
}

// NewFile creates a file source. Relative locations resolve against dir;
// an empty dir means the working directory.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

// Name identifies the driver.
func (f *File) Name() string { return "file" }

// Path resolves location to a filesystem path.
func (f *File) Path(location string) string {
	if f.dir == "" || filepath.IsAbs(location) {
		return location
	}
	return filepath.Join(f.dir, location)
}

// Fetch reads the whole file.
func (f *File) Fetch(ctx context.Context, location string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.Path(location))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", location, err)
	}
	return string(data), nil
}

// Stat checks that the file exists and is not a directory.
func (f *File) Stat(_ context.Context, location string) error {
	info, err := os.Stat(f.Path(location))
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", location)
	}
	return nil
}
