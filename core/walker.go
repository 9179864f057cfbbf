package core

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/janus-clew/clew/internal/contract"
	"github.com/janus-clew/clew/schema"
)

// excludedDirs are directory names skipped during the walk regardless of
// gitignore rules. They hold dependencies, build output or VCS metadata and
// would distort structural counts.
var excludedDirs = map[string]struct{}{
	".git":          {},
	".hg":           {},
	".svn":          {},
	"node_modules":  {},
	"vendor":        {},
	"venv":          {},
	".venv":         {},
	"env":           {},
	"__pycache__":   {},
	".tox":          {},
	"site-packages": {},
	"dist":          {},
	"build":         {},
	"out":           {},
	"target":        {},
	"bin":           {},
}

// CollectSourceFiles validates a repository path and walks it for parseable
// source files. Returned paths are relative to repoPath and sorted in walk
// order. Validation failures surface as InvalidRepositoryError.
func CollectSourceFiles(repoPath string) ([]string, error) {
	info, err := os.Stat(repoPath)
	if err != nil {
		return nil, &contract.InvalidRepositoryError{Path: repoPath, Reason: "path does not exist"}
	}
	if !info.IsDir() {
		return nil, &contract.InvalidRepositoryError{Path: repoPath, Reason: "path is not a directory"}
	}
	if _, err := os.Stat(filepath.Join(repoPath, ".git")); err != nil {
		return nil, &contract.InvalidRepositoryError{Path: repoPath, Reason: "not a git repository (missing .git)"}
	}

	// A missing or unreadable .gitignore simply disables ignore matching.
	matcher, _ := ignore.CompileIgnoreFile(filepath.Join(repoPath, ".gitignore"))

	var files []string
	err = filepath.WalkDir(repoPath, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(repoPath, path)
		if relErr != nil || rel == "." {
			return nil
		}

		if d.IsDir() {
			if _, excluded := excludedDirs[d.Name()]; excluded {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if _, ok := schema.LanguageForExtension[ext]; !ok {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, &contract.StorageReadError{Path: repoPath, Err: err}
	}
	return files, nil
}
