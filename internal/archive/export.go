package archive

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// Export copies archive entries into dir under their base names and returns
// the written file paths. It stops at the first entry that cannot be copied.
func Export(ctx context.Context, a Archive, names []string, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	written := make([]string, 0, len(names))
	for _, name := range names {
		data, err := a.ReadBlob(ctx, name)
		if err != nil {
			return written, fmt.Errorf("read %s: %w", name, err)
		}
		target := filepath.Join(dir, path.Base(name))
		if err := os.WriteFile(target, data, 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}
