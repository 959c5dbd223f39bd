package application

import (
	"errors"
	"fmt"
	"io/fs"
)

var ErrFileAccess = errors.New("cannot access file")

func fileAccessError(path string, err error) error {
	hint := "check the path and try again"
	switch {
	case errors.Is(err, fs.ErrNotExist):
		hint = "the file does not exist; relative paths start at the current directory"
	case errors.Is(err, fs.ErrPermission):
		hint = "permission denied; check the file mode"
	}

	return fmt.Errorf("%w %s (%s): %w", ErrFileAccess, path, hint, err)
}
