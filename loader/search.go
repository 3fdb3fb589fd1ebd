// SPDX-License-Identifier: MIT

package loader

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// baseName returns the portion of a filename before its first dot, or
// the whole name if it has none — the part a module name must match.
func baseName(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// suffixChain returns a file's dotted extensions in application
// order: the innermost (rightmost-written) language runs first, on
// the raw bytes, and each subsequent one runs on the prior's output.
func suffixChain(name string) []string {
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return nil
	}
	exts := parts[1:]
	chain := make([]string, len(exts))
	for i, e := range exts {
		chain[len(exts)-1-i] = e
	}
	return chain
}

// resolveInDir implements the §6.4 per-directory module resolution
// rule: a direct file match wins; failing that, a public.* file inside
// a same-named subdirectory; ambiguity at either step is reported by
// name rather than silently picking one.
func resolveInDir(dir, name string) (path string, suffixes []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, errors.Wrapf(ErrNotFound, "%s: %v", dir, err)
	}
	var direct []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if baseName(e.Name()) == name {
			direct = append(direct, e.Name())
		}
	}
	sort.Strings(direct)
	if len(direct) > 1 {
		return "", nil, errors.Wrapf(ErrAmbiguous, "module %q in %s: %s", name, dir, strings.Join(direct, ", "))
	}
	if len(direct) == 1 {
		return filepath.Join(dir, direct[0]), suffixChain(direct[0]), nil
	}

	sub := filepath.Join(dir, name)
	if fi, statErr := os.Stat(sub); statErr == nil && fi.IsDir() {
		subEntries, readErr := os.ReadDir(sub)
		if readErr != nil {
			return "", nil, errors.Wrapf(ErrNotFound, "%s: %v", sub, readErr)
		}
		var pub []string
		for _, e := range subEntries {
			if !e.IsDir() && strings.HasPrefix(e.Name(), "public.") {
				pub = append(pub, e.Name())
			}
		}
		sort.Strings(pub)
		if len(pub) > 1 {
			return "", nil, errors.Wrapf(ErrAmbiguous, "module %q in %s: %s", name, sub, strings.Join(pub, ", "))
		}
		if len(pub) == 1 {
			return filepath.Join(sub, pub[0]), suffixChain(pub[0]), nil
		}
	}
	return "", nil, errors.Wrapf(ErrNotFound, "module %q not found in %s", name, dir)
}

// resolveInDirs searches dirs in order, returning the first match. An
// ambiguity within any single directory is reported immediately rather
// than falling through to later directories.
func resolveInDirs(dirs []string, name string) (path string, suffixes []string, err error) {
	for _, d := range dirs {
		p, s, e := resolveInDir(d, name)
		if e == nil {
			return p, s, nil
		}
		if !errors.Is(e, ErrNotFound) {
			return "", nil, e
		}
	}
	return "", nil, errors.Wrapf(ErrNotFound, "module %q not found in search path", name)
}
