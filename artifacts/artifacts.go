package artifacts

import (
	"fmt"
	"os"
	"strings"

	"webup/hostup/logger"
)

// The four artifacts generated into the working directory. The environment
// file doubles as the durable form of the configuration record and is read
// back on later invocations.
const (
	EnvFile     = ".env"
	ComposeFile = "docker-compose.yml"
	IgnoreFile  = ".gitignore"

	SiteFileSuffix = ".nginx.conf"
)

// SiteFile returns the name of the proxy site file for a hostname.
func SiteFile(hostname string) string {
	return hostname + SiteFileSuffix
}

// Materialize writes a rendered artifact to its target path. An existing
// regular file is preserved (skip with a warning, never overwrite); a
// directory at the target path is a fatal collision.
func Materialize(path string, content string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("unable to create '%s': a directory with this name exists", path)
		}
		logger.Warn("%s already exists, skipping", path)
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return err
	}
	logger.Success("%s created", path)
	return nil
}

// MaterializeIgnore creates the ignore file, or appends the mount stanza to
// an existing one when the mount path is not referenced yet. Appending twice
// yields the same ignored-path set.
func MaterializeIgnore(path string, mountPath string) error {
	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Materialize(path, RenderGitignore(mountPath))
	}
	if err != nil {
		return err
	}

	if ignoresPath(string(existing), mountPath) {
		logger.Warn("%s already ignores '%s/', skipping", path, mountPath)
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(RenderGitignore(mountPath)); err != nil {
		return err
	}
	logger.Success("%s updated", path)
	return nil
}

func ignoresPath(content string, mountPath string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == mountPath+"/" {
			return true
		}
	}
	return false
}
