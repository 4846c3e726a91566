package paths

import (
	"flag"
	"path/filepath"
)

// SetupDirPathFlag creates a new string flag with the passed name defaulting
// to the directory in which fileName was found using the Find function. If
// not found, the flag defaults to an empty string.
func SetupDirPathFlag(fileName, flagName string, flagPtr *string) {
	def := ""
	if path := Find(fileName); path != "" {
		def = filepath.Dir(path)
	}
	flag.StringVar(flagPtr, flagName, def, "Directory containing "+fileName)
}
