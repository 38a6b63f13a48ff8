package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"webup/hostup/domain"
)

// Variables so tests can point them at a scratch directory.
var (
	SitesAvailableDir = "/etc/nginx/sites-available"
	SitesEnabledDir   = "/etc/nginx/sites-enabled"
)

// AvailableSitePath returns the install location of a site file.
func AvailableSitePath(siteFile string) string {
	return filepath.Join(SitesAvailableDir, siteFile)
}

// EnabledSitePath returns the symlink location of an enabled site file.
func EnabledSitePath(siteFile string) string {
	return filepath.Join(SitesEnabledDir, siteFile)
}

// EnsureSitesDirs creates the available/enabled site directories when the
// nginx installation doesn't have them yet.
func EnsureSitesDirs() error {
	for _, dir := range []string{SitesAvailableDir, SitesEnabledDir} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.Mkdir(dir, 0755); err != nil {
				return err
			}
		}
	}
	return nil
}

// InstallSiteConf copies the generated site file into sites-available and
// (re)creates its sites-enabled symlink.
func InstallSiteConf(siteFile string) error {
	available := AvailableSitePath(siteFile)
	if err := CopyFileContents(siteFile, available); err != nil {
		return fmt.Errorf("unable to copy the site file: %w", err)
	}

	enabled := EnabledSitePath(siteFile)
	if _, err := os.Lstat(enabled); err == nil {
		if err := os.Remove(enabled); err != nil {
			return err
		}
	}
	return os.Symlink(available, enabled)
}

// RemoveSiteConf removes the enabled symlink (a missing link is tolerated)
// and the available site file.
func RemoveSiteConf(siteFile string) error {
	enabled := EnabledSitePath(siteFile)
	if _, err := os.Lstat(enabled); err == nil {
		if err := os.Remove(enabled); err != nil {
			return err
		}
	}
	return os.Remove(AvailableSitePath(siteFile))
}

// NginxTestConfig runs the daemon's own configuration test.
func NginxTestConfig() error {
	return domain.NewCommand([]string{"nginx", "-t"}).Execute()
}
