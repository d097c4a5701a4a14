package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultOutputFile is the report destination used when none is configured.
const DefaultOutputFile = "test_detail.xml"

// WriteFile renders the report with the given formatter and writes it to
// path. The file appears atomically: the report is written to a temporary
// file in the destination directory and renamed into place, so a failed
// run never leaves a partial file behind.
func WriteFile(ctx context.Context, path string, f Formatter, report *Report) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".plreport-*")
	if err != nil {
		return fmt.Errorf("creating report file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if err := f.Format(ctx, report, tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing report: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing report file: %w", err)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting report file mode: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming report file: %w", err)
	}

	return nil
}
