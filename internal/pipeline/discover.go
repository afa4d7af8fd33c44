package pipeline

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/backmassage/titleparse/internal/naming"
)

// prunedDirs are bonus-material and NAS metadata folders whose files are
// not releases of their own (compared case-insensitively).
var prunedDirs = []string{"extras", "featurettes", "sample", "samples", "@eadir"}

// Discover walks inputDir and returns every file with a media extension,
// sorted so runs are deterministic. Hidden entries and [prunedDirs] below
// the root are skipped; inputDir itself is always walked.
func Discover(inputDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == inputDir {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, ".") || slices.Contains(prunedDirs, strings.ToLower(name)) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if _, ext := naming.SplitExt(name); ext != "" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}
