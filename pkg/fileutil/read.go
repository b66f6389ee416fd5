package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/rsscheck/internal/errors"
)

// ErrFileTooLarge indicates that a file exceeded the read limit.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

// ReadFileWithLimit reads a file up to limit bytes.
// It returns an error wrapping ErrFileTooLarge if the file is larger.
func ReadFileWithLimit(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Get file info to fail fast if size is already too large
	info, err := f.Stat()
	if err == nil {
		if info.IsDir() {
			return nil, errors.Newf("%s is a directory", path)
		}
		if info.Size() > limit {
			return nil, errors.Wrapf(ErrFileTooLarge, "%d bytes, limit %d", info.Size(), limit)
		}
	}

	return ReadAllWithLimit(f, limit)
}

// ReadAllWithLimit reads r until EOF or until more than limit bytes were
// read, in which case it returns an error wrapping ErrFileTooLarge.
func ReadAllWithLimit(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading")
	}

	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "limit %d", limit)
	}

	return data, nil
}
