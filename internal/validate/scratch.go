package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// scratchPattern names snippet files; the .swift suffix is what swiftc
// keys the input language on.
const scratchPattern = "swiftkit-snippet-*.swift"

// scratchFile is a temp file holding one snippet. It is owned by a single
// validation and must be released with Remove.
type scratchFile struct {
	path string
}

// newScratch writes code to a fresh temp file in dir ("" selects os.TempDir).
// On failure nothing is left behind.
func newScratch(dir, code string) (*scratchFile, error) {
	f, err := os.CreateTemp(dir, scratchPattern)
	if err != nil {
		return nil, fmt.Errorf("creating snippet file: %w", err)
	}
	s := &scratchFile{path: f.Name()}

	if _, err := f.WriteString(code); err != nil {
		_ = f.Close()
		_ = s.Remove()
		return nil, fmt.Errorf("writing snippet file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = s.Remove()
		return nil, fmt.Errorf("closing snippet file: %w", err)
	}
	return s, nil
}

// Remove deletes the file. Removing an already-deleted file is not an error.
func (s *scratchFile) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
