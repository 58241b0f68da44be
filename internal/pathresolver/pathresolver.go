// Package pathresolver searches a colon-separated directory list for the
// first executable file matching a bare command name.
//
// It is its own leaf package (rather than living in internal/shell or
// internal/builtin) because both the external executor and the type
// built-in need it and neither should depend on the other.
package pathresolver

import (
	"os"
	"strings"
)

// Lookup searches pathEnv's colon-separated directories, in order, for an
// executable file named name. It returns the first match's full path.
//
// An empty pathEnv, or a name not found in any entry, yields ("", false).
// Empty directory entries (leading/trailing/doubled colons) are ignored.
// A name containing a slash bypasses PATH search entirely: it is checked
// directly against the filesystem and returned verbatim if executable.
func Lookup(name, pathEnv string) (string, bool) {
	if name == "" {
		return "", false
	}
	if strings.Contains(name, "/") {
		if isExecutableFile(name) {
			return name, true
		}
		return "", false
	}
	for _, dir := range strings.Split(pathEnv, ":") {
		if dir == "" {
			continue
		}
		candidate := dir + "/" + name
		if isExecutableFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0111 != 0
}
