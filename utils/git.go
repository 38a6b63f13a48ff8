package utils

import (
	"os"

	"webup/hostup/domain"
	"webup/hostup/logger"
)

// GitInit initialises version control in the working directory, skipping
// when a repository is already present so reruns stay idempotent.
func GitInit() error {
	if _, err := os.Stat(".git"); err == nil {
		logger.Info("Git repository already initialised")
		return nil
	}
	return domain.NewCommand([]string{"git", "init"}).Execute()
}
