package snapshot

import (
	"os"
	"path/filepath"
)

// writeAtomic writes data to path by first writing a sibling temp file
// in the same directory (so the final rename is on the same
// filesystem and therefore atomic), fsyncing it, then renaming it over
// path — spec.md §4.6: "write to a sibling temp file, fsync, rename
// over the target." No ecosystem library in the example pack offers
// atomic file replacement; this is plain os/filepath, the only honest
// way to do it from Go without inventing a dependency nothing in the
// corpus uses.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
