package descriptor

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/pkg/errors"
)

// Find returns path itself when it is a file, otherwise every *.xml file
// beneath it, sorted.
func Find(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "stat")
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var paths []string
	var mutex sync.Mutex

	conf := fastwalk.Config{
		Follow: false,
	}

	walkFn := func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithError(err).Warnf("Error accessing path %q during walk", p)
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".xml") {
			return nil
		}

		mutex.Lock()
		paths = append(paths, p)
		mutex.Unlock()
		return nil
	}

	if err := fastwalk.Walk(&conf, path, walkFn); err != nil {
		return nil, errors.Wrapf(err, "walk %s", path)
	}

	sort.Strings(paths)
	return paths, nil
}
