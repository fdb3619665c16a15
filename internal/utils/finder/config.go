package finder

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindConfigFile returns the absolute path of configPath. When the file is
// absent it returns an error if mustExist, otherwise an empty path.
func FindConfigFile(configPath string, mustExist bool) (string, error) {
	if configPath == "" {
		if mustExist {
			return "", fmt.Errorf("configuration file path is empty")
		}
		return "", nil
	}

	if _, err := os.Stat(configPath); err == nil {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		return absPath, nil
	} else if mustExist || !os.IsNotExist(err) {
		return "", fmt.Errorf("configuration file not usable: %s: %w", configPath, err)
	}

	return "", nil
}
