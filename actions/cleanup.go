package actions

import (
	"os"
	"strings"

	"webup/hostup/artifacts"
	"webup/hostup/domain"
	"webup/hostup/logger"
	"webup/hostup/utils"
)

// CleanupActionHandler tears the deployment down completely: containers and
// their data volumes are removed, then every generated file and the git
// repository are deleted from the working directory.
func CleanupActionHandler(ctx domain.ExecutionContext, cfg domain.Config) error {
	logger.Info("Stopping containers and removing volumes...")
	if err := utils.ComposeDown(true); err != nil {
		return err
	}

	logger.Info("Removing generated files...")
	if err := removeProjectFiles("."); err != nil {
		return err
	}

	logger.Success("Cleanup complete")
	return nil
}

func removeProjectFiles(dir string) error {
	for _, file := range []string{artifacts.EnvFile, artifacts.ComposeFile, artifacts.IgnoreFile} {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	if _, err := os.Stat(".git"); err == nil {
		if err := os.RemoveAll(".git"); err != nil {
			return err
		}
		logger.Info("Removed .git")
	}

	confs, err := siteConfs(dir)
	if err != nil {
		return err
	}
	for _, conf := range confs {
		if err := os.Remove(conf); err != nil {
			return err
		}
	}
	return nil
}

func siteConfs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var confs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), artifacts.SiteFileSuffix) {
			confs = append(confs, entry.Name())
		}
	}
	return confs, nil
}
