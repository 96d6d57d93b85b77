package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xlab/treeprint"
)

// LoadFilesFromDir walks dir recursively and returns the paths of regular
// files whose extension is in exts (lowercase, with dot). An empty exts set
// returns every regular file.
func LoadFilesFromDir(dir string, exts map[string]bool) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if len(exts) > 0 && !exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func ReadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(content), nil
}

// BuildTree renders the directory layout of dir as an ASCII tree, skipping
// bookkeeping directories. Used to log the corpus at ingestion time.
func BuildTree(dir string, tree treeprint.Tree, skipDirs map[string]bool) (string, error) {
	if tree == nil {
		tree = treeprint.New()
		tree.SetValue(filepath.Base(dir))
	}
	if skipDirs == nil {
		skipDirs = map[string]bool{
			".git":      true,
			".cache":    true,
			".DS_Store": true,
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if skipDirs[entry.Name()] {
				continue
			}
			branch := tree.AddBranch(entry.Name())
			if _, err = BuildTree(filepath.Join(dir, entry.Name()), branch, skipDirs); err != nil {
				return "", err
			}
		} else {
			tree.AddNode(entry.Name())
		}
	}
	return tree.String(), nil
}

func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func CastAny[T any](v any) (*T, error) {
	var result T
	jsonData, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error serializing input to JSON: %w", err)
	}

	if err = json.Unmarshal(jsonData, &result); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}

	return &result, nil
}
