package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// getPossiblePathDirsImp returns the directories Find searches, in order.
func getPossiblePathDirsImp() []string {
	dirs := []string{
		"datafiles/html",
		os.Args[0] + ".runfiles/go_sprited/datafiles/html",
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		dirs = append(dirs, gopath+"/src/badc0de.net/pkg/go-sprited/datafiles/html")
	}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	// wasm_exec.js ships with the toolchain; its location moved in Go 1.24.
	if goroot := runtime.GOROOT(); goroot != "" {
		dirs = append(dirs, filepath.Join(goroot, "lib", "wasm"), filepath.Join(goroot, "misc", "wasm"))
	}
	return dirs
}

func getPossiblePathsImp(fileName string) []string {
	var paths []string
	for _, dir := range getPossiblePathDirsImp() {
		paths = append(paths, filepath.Join(dir, fileName))
	}
	return paths
}
