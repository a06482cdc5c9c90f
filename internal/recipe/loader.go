package recipe

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a recipe catalog from path. The path may be a single file
// containing one recipe object or an array of them, or a directory that is
// walked recursively with every .json/.yaml/.yml file merged in sorted path
// order.
func Load(path string) ([]Recipe, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat recipe source: %w", err)
	}

	var recipes []Recipe
	if info.IsDir() {
		files, err := catalogFiles(path)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			parsed, err := loadFile(file)
			if err != nil {
				return nil, err
			}
			recipes = append(recipes, parsed...)
		}
	} else {
		recipes, err = loadFile(path)
		if err != nil {
			return nil, err
		}
	}

	if err := validateCatalog(recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func catalogFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk recipe directory %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

func loadFile(path string) ([]Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe file: %w", err)
	}

	recipes, err := decodeRecipes(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("parse recipe file %s: %w", path, err)
	}
	return recipes, nil
}

// decodeRecipes accepts either a single recipe document or an array of them.
func decodeRecipes(data []byte, ext string) ([]Recipe, error) {
	yamlExt := ext == ".yaml" || ext == ".yml"

	var list []Recipe
	var listErr error
	if yamlExt {
		listErr = yaml.Unmarshal(data, &list)
	} else {
		listErr = json.Unmarshal(data, &list)
	}
	if listErr == nil {
		for i := range list {
			list[i].normalize()
		}
		return list, nil
	}

	var single Recipe
	var singleErr error
	if yamlExt {
		singleErr = yaml.Unmarshal(data, &single)
	} else {
		singleErr = json.Unmarshal(data, &single)
	}
	if singleErr != nil {
		return nil, listErr
	}
	single.normalize()
	return []Recipe{single}, nil
}

func validateCatalog(recipes []Recipe) error {
	seen := make(map[string]struct{}, len(recipes))
	for _, r := range recipes {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("duplicate recipe id %q in catalog", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
