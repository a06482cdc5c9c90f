package app

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"mealplanner/internal/recipe"
)

// ImportRecipes converts saved recipe web pages from opts.InputDir into
// catalog JSON files under opts.OutputDir. Pages without extractable recipe
// data are logged and skipped; the operation fails only when nothing could
// be imported from a non-empty input set.
func (a *App) ImportRecipes(opts ImportOptions) error {
	pages, err := htmlPages(opts.InputDir)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return fmt.Errorf("no .html files found in %s", opts.InputDir)
	}

	imported := 0
	for _, page := range pages {
		rec, err := recipe.ImportHTML(page)
		if err != nil {
			a.log.WithField("page", page).WithError(err).Warn("skipping page")
			continue
		}

		outPath := filepath.Join(opts.OutputDir, rec.ID+".json")
		if err := writeJSONFile(outPath, rec); err != nil {
			return err
		}
		a.log.WithFields(logrus.Fields{
			"recipe": rec.ID,
			"file":   outPath,
		}).Info("imported recipe")
		imported++
	}

	if imported == 0 {
		return fmt.Errorf("none of the %d pages in %s contained recipe data", len(pages), opts.InputDir)
	}
	return nil
}

func htmlPages(dir string) ([]string, error) {
	var pages []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".html", ".htm":
			pages = append(pages, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk import directory %s: %w", dir, err)
	}
	sort.Strings(pages)
	return pages, nil
}
