package files_manager

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var heicExtensions = map[string]bool{
	".heic": true,
	".heif": true,
}

func IsHEIC(path string) bool {
	return heicExtensions[strings.ToLower(filepath.Ext(path))]
}

// ListHEICPaths returns the HEIC files under dir sorted by path. AppleDouble
// "._" entries are skipped; subdirectories are walked only when recursive.
func ListHEICPaths(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), "._") {
			return nil
		}
		if IsHEIC(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error while scanning directory: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// ExpandInputs turns a mix of files and directories into a file list.
// Directories contribute their HEIC files; plain files are kept as given.
func ExpandInputs(inputs []string, recursive bool) ([]string, error) {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err == nil && info.IsDir() {
			found, err := ListHEICPaths(in, recursive)
			if err != nil {
				return nil, err
			}
			out = append(out, found...)
			continue
		}
		out = append(out, in)
	}
	return out, nil
}

// CheckOutputDir verifies dir exists and is a directory. It never creates it.
func CheckOutputDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory required")
	}
	stat, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !stat.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
