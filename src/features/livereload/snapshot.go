package livereload

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TakeSnapshot lists the files under dir whose extension is in exts and
// returns their modification times keyed by path. Hidden directories are
// skipped when walking recursively.
func TakeSnapshot(dir string, exts []string, recursive bool) (map[string]time.Time, error) {
	allowed := ExtensionSet(exts)
	watched := func(name string) bool {
		_, ok := allowed[strings.ToLower(filepath.Ext(name))]
		return ok
	}

	files := make(map[string]time.Time)
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || !watched(entry.Name()) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				// Removed between listing and stat
				if os.IsNotExist(err) {
					continue
				}
				return nil, err
			}
			files[filepath.Join(dir, entry.Name())] = info.ModTime()
		}
		return files, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path != dir {
				return nil
			}
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !watched(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		files[path] = info.ModTime()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ExtensionSet normalizes exts to lower case with a leading dot, so "HTML",
// "html" and ".html" all match index.html.
func ExtensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

func sameFiles(a, b map[string]time.Time) bool {
	if len(a) != len(b) {
		return false
	}
	for path, modTime := range a {
		other, ok := b[path]
		if !ok || !other.Equal(modTime) {
			return false
		}
	}
	return true
}
