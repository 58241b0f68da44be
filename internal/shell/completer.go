package shell

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/quietloop/posh/internal/builtin"
	"github.com/quietloop/posh/internal/pathresolver"
)

// poshCompleter completes the first word against built-ins plus every
// executable on PATH, and every later word against the filesystem.
type poshCompleter struct{}

func newCompleter() readline.AutoCompleter {
	return &poshCompleter{}
}

func (c *poshCompleter) Do(line []rune, pos int) ([][]rune, int) {
	lineStr := string(line[:pos])
	words := strings.Fields(lineStr)

	if len(words) == 0 || (len(words) == 1 && !strings.HasSuffix(lineStr, " ")) {
		prefix := ""
		if len(words) == 1 {
			prefix = words[0]
		}
		return c.completeCommand(prefix)
	}

	lastSpace := strings.LastIndex(lineStr, " ")
	partial := ""
	if lastSpace < len(lineStr)-1 {
		partial = lineStr[lastSpace+1:]
	}
	return c.completePath(partial)
}

func (c *poshCompleter) completeCommand(prefix string) ([][]rune, int) {
	seen := make(map[string]bool)
	var matches []string

	for _, name := range builtin.Names() {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
			seen[name] = true
		}
	}
	for _, dir := range strings.Split(os.Getenv("PATH"), ":") {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if seen[name] || !strings.HasPrefix(name, prefix) {
				continue
			}
			if _, ok := pathresolver.Lookup(name, dir); ok {
				matches = append(matches, name)
				seen[name] = true
			}
		}
	}

	sort.Strings(matches)
	result := make([][]rune, len(matches))
	for i, m := range matches {
		result[i] = []rune(m[len(prefix):] + " ")
	}
	return result, len(prefix)
}

func (c *poshCompleter) completePath(partial string) ([][]rune, int) {
	searchDir := filepath.Dir(partial)
	searchPrefix := filepath.Base(partial)
	if partial == "" {
		searchDir = "."
		searchPrefix = ""
	} else if strings.HasSuffix(partial, "/") {
		searchDir = filepath.Clean(partial)
		searchPrefix = ""
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil, 0
	}

	var matches []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, searchPrefix) {
			continue
		}
		if entry.IsDir() {
			matches = append(matches, name+"/")
		} else {
			matches = append(matches, name)
		}
	}

	sort.Strings(matches)
	result := make([][]rune, len(matches))
	for i, m := range matches {
		suffix := m[len(searchPrefix):]
		if !strings.HasSuffix(suffix, "/") {
			suffix += " "
		}
		result[i] = []rune(suffix)
	}
	return result, len(searchPrefix)
}
