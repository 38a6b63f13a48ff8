package actions

import (
	"context"

	"webup/hostup/artifacts"
	"webup/hostup/checks"
	"webup/hostup/domain"
	"webup/hostup/logger"
	"webup/hostup/utils"
)

// InstallActionHandler brings the containers up and wires the proxy: the
// site file is copied into sites-available, symlinked into sites-enabled and
// the daemon is reloaded through the init system.
func InstallActionHandler(ctx domain.ExecutionContext, cfg domain.Config) error {
	err := checks.Gate(ctx,
		checks.RunningAsRoot(),
		checks.DockerInstalled(),
		checks.ComposeInstalled(),
		checks.DockerDaemonRunning(),
		checks.NginxInstalled(),
		checks.NginxConfigValid(),
		checks.SystemdInstalled(),
		checks.PathExists(artifacts.ComposeFile),
		checks.PathExists(artifacts.EnvFile),
		checks.PathExists(artifacts.SiteFile(cfg.Hostname)),
	)
	if err != nil {
		return err
	}

	logger.Info("Running docker-compose...")
	if err := utils.ComposeUp(); err != nil {
		return err
	}
	logger.Success("Docker-compose complete")

	logger.Info("Creating sites-available and sites-enabled...")
	if err := utils.EnsureSitesDirs(); err != nil {
		return err
	}

	logger.Info("Installing Nginx configuration...")
	if err := utils.InstallSiteConf(artifacts.SiteFile(cfg.Hostname)); err != nil {
		return err
	}

	logger.Info("Reloading Nginx...")
	if err := utils.ReloadNginx(context.Background()); err != nil {
		return err
	}

	logger.Success("Installation complete")
	return nil
}
