// Package fileutil provides file system utilities for reading feeds with a
// size limit and writing reports atomically.
package fileutil

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/thoreinstein/rsscheck/internal/errors"
)

// WriteAtomic streams the output of write into path. The data goes to a
// temporary file in the same directory which replaces path only after write
// succeeds, so readers never observe a partial report. The parent directory
// must exist.
func WriteAtomic(path string, perm os.FileMode, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return errors.Wrap(err, "writing temp file")
	}
	if err = tmp.Chmod(perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrap(err, "syncing temp file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "replacing file")
	}
	return nil
}

// AtomicWriteFile writes data to path through WriteAtomic.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	return WriteAtomic(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
