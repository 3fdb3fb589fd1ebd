// SPDX-License-Identifier: MIT

package loader

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/dmbarbour/glas/textree"
)

// GlobalSearchPath reads home/sources.tt and returns the directories
// its top-level "dir" entries name, resolved relative to home, in the
// order they appear. Entries with any other label are ignored — this
// core only needs the plain directory form of §6.4.
func GlobalSearchPath(home string) ([]string, error) {
	f, err := os.Open(filepath.Join(home, "sources.tt"))
	if err != nil {
		return nil, errors.Wrap(err, "loader: read sources.tt")
	}
	defer f.Close()

	nodes, err := textree.Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, "loader: parse sources.tt")
	}
	var dirs []string
	for _, n := range nodes {
		if n.Label != "dir" || len(n.Children) != 0 {
			continue
		}
		dirs = append(dirs, filepath.Join(home, n.Data))
	}
	return dirs, nil
}
