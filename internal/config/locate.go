package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/noxpardalis/gitch/internal/clierr"
)

// Default configuration file names, searched for at the repository root.
const (
	FileName    = ".check-commits.yaml"
	FileNameAlt = ".check-commits.yml"
)

// Locate resolves the configuration file for a repository rooted at root.
// Both spellings present is fatal since neither can take priority; neither
// present is fatal because there is nothing to check against.
func Locate(root string) (string, error) {
	yamlPath := filepath.Join(root, FileName)
	ymlPath := filepath.Join(root, FileNameAlt)

	// Existence checks here exist only to shape the error message; Load
	// re-opens the file and handles races on its own.
	yamlExists := fileExists(yamlPath)
	ymlExists := fileExists(ymlPath)

	switch {
	case yamlExists && ymlExists:
		return "", clierr.Fatal(
			fmt.Sprintf("found both %q and %q at %q", FileName, FileNameAlt, root),
			"unsure which configuration file should take priority",
			"remove one of the two files or pass in one of them explicitly via '--config'",
		)
	case yamlExists:
		return yamlPath, nil
	case ymlExists:
		return ymlPath, nil
	default:
		return "", clierr.Fatal(
			fmt.Sprintf("could not find %q in root of repository at %q", FileName, root),
			"no configuration found unable to proceed",
			fmt.Sprintf("create a %q at the root or pass in a config file explicitly via '--config'", FileName),
		)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
