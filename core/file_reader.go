package core

import (
	"context"
	"os"
	"path/filepath"
)

// FileReader reads local resources from the file system. Relative paths are
// joined to Root when it is set, otherwise they resolve against the working
// directory.
type FileReader struct {
	Root string
}

// Read returns the contents of the file at path.
func (f FileReader) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(f.Root, path)
	}
	return os.ReadFile(path)
}
