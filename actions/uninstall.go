package actions

import (
	"context"

	"webup/hostup/artifacts"
	"webup/hostup/checks"
	"webup/hostup/domain"
	"webup/hostup/logger"
	"webup/hostup/utils"
)

// UninstallActionHandler reverses the installation: the containers are
// stopped (data volumes are kept) and the proxy configuration is removed and
// the daemon reloaded. Generated files stay in the working directory.
func UninstallActionHandler(ctx domain.ExecutionContext, cfg domain.Config) error {
	err := checks.Gate(ctx,
		checks.ArtifactsExist(),
		checks.ProxyConfigInstalled(cfg.Hostname),
		checks.RunningAsRoot(),
		checks.DockerInstalled(),
		checks.ComposeInstalled(),
		checks.DockerDaemonRunning(),
		checks.NginxInstalled(),
		checks.SystemdInstalled(),
	)
	if err != nil {
		return err
	}

	logger.Info("Stopping containers...")
	if err := utils.ComposeDown(false); err != nil {
		return err
	}

	logger.Info("Removing Nginx configuration...")
	if err := utils.RemoveSiteConf(artifacts.SiteFile(cfg.Hostname)); err != nil {
		return err
	}

	logger.Info("Reloading Nginx...")
	if err := utils.ReloadNginx(context.Background()); err != nil {
		return err
	}

	logger.Success("Uninstall complete")
	return nil
}
