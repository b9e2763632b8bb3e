package slideshow

import (
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scan lists the files of dir ending with ext, sorted by path.
// An unreadable folder is an empty slideshow.
func Scan(fs afero.Fs, dir string, ext string) []string {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		logrus.Warnf("Unable to list event folder %s: %v", dir, err)
		return []string{}
	}

	paths := lo.FilterMap(entries, func(entry os.FileInfo, _ int) (string, bool) {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			return "", false
		}
		return filepath.Join(dir, entry.Name()), true
	})
	sort.Strings(paths)

	logrus.Debugf("Found %d event images in %s", len(paths), dir)
	return paths
}

// Rotator walks through the event images in order, wrapping around
type Rotator struct {
	paths  []string
	cursor int
}

func NewRotator(paths []string) *Rotator {
	return &Rotator{paths: paths}
}

// Next returns the image to show and moves on. It returns false when there is nothing to show.
func (r *Rotator) Next() (string, bool) {
	if len(r.paths) == 0 {
		return "", false
	}
	path := r.paths[r.cursor%len(r.paths)]
	r.cursor++
	return path, true
}

func (r *Rotator) Len() int {
	return len(r.paths)
}
