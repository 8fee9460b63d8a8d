package slashdoc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// CollectFiles expands command-line arguments into input files, keeping the
// order in which they are named.
//
// An argument naming a file is used as is. A directory is walked, skipping
// hidden entries and files that do not look like text. Anything else is
// loaded as a Go package pattern (e.g. "./..."), contributing the package's
// Go and other source files.
func CollectFiles(ctx context.Context, args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, ErrNoInput
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			walked, err := walkDir(arg)
			if err != nil {
				return nil, err
			}

			files = append(files, walked...)
		case err == nil:
			files = append(files, arg)
		case errors.Is(err, fs.ErrNotExist):
			pkgFiles, err := packageFiles(ctx, arg)
			if err != nil {
				return nil, err
			}

			files = append(files, pkgFiles...)
		default:
			return nil, err
		}
	}

	return uniqStrings(files...), nil
}

func walkDir(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.Type().IsRegular() && isTextFile(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}

// packageFiles resolves a Go package pattern to the files of the matching
// packages.
func packageFiles(ctx context.Context, pattern string) ([]string, error) {
	cfg := &packages.Config{
		Mode:    packages.NeedName | packages.NeedFiles,
		Context: ctx,
		Env:     append(os.Environ(), "GOWORK=off"),
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", pattern, err)
	}

	var files []string
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("load %q: %v", pattern, pkg.Errors[0])
		}

		files = append(files, pkg.GoFiles...)
		files = append(files, pkg.OtherFiles...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%q: no such file, directory or package", pattern)
	}

	logger.Debugf("%s: %d files from %d packages", pattern, len(files), len(pkgs))

	return files, nil
}
