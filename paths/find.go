// Package paths locates the files the browser frontend needs at runtime but
// which are not compiled into the server: the frontend's main.wasm and the
// Go toolchain's wasm_exec.js.
package paths

import (
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Find locates the passed file shortname and returns an absolute or
// relative path to find the file at, or an empty string.
//
// For example, for "main.wasm" it may return
// "mybinary.runfiles/go_sprited/datafiles/html/main.wasm".
func Find(fileName string) string {
	possiblePaths := getPossiblePathsImp(fileName)

	for _, path := range possiblePaths {
		if f, err := os.Open(path); err == nil {
			f.Close()
			glog.Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}

	return ""
}

// FindIn looks for fileName in dir first, then wherever Find would look.
func FindIn(dir, fileName string) string {
	if dir != "" {
		path := dir + string(os.PathSeparator) + fileName
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return Find(fileName)
}

// Open locates the passed file in the same locations that Find would look,
// and opens it. If Find returns an empty string, an error is returned.
func Open(fileName string) (interface {
	io.ReadCloser
	io.Seeker
}, error) {
	path := Find(fileName)
	if path == "" {
		return nil, errors.Wrapf(os.ErrNotExist, "go-sprited/paths/Open(%q)", fileName)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "go-sprited/paths/Open(%q)", fileName)
	}
	return f, nil
}
