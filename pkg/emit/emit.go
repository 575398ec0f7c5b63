// Package emit writes rendered project files to disk.
//
// The renderer produces named contents; this package owns the filesystem
// side: creating the output directory and writing each file with LF line
// endings, which the board and schematic formats require regardless of
// platform.
package emit

import (
	"os"
	"path/filepath"

	"github.com/kbforge/kbforge/pkg/errors"
	"github.com/kbforge/kbforge/pkg/render"
)

// WriteFiles creates dir if needed and writes every file into it. Files
// are written in order; the first failure aborts, leaving any files
// already written in place.
func WriteFiles(dir string, files []render.File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", dir)
	}
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
	}
	return nil
}
