package actions

import (
	"webup/hostup/artifacts"
	"webup/hostup/checks"
	"webup/hostup/domain"
	"webup/hostup/logger"
	"webup/hostup/utils"
)

// ConfigureActionHandler generates the project files in the working
// directory: the ignore file, the orchestration manifest, the environment
// file and the proxy site file. Existing files are kept as they are.
func ConfigureActionHandler(ctx domain.ExecutionContext, cfg domain.Config) error {
	err := checks.Gate(ctx,
		checks.DirectoryWriteable(),
		checks.DirectoryClean(),
		checks.GitInstalled(),
	)
	if err != nil {
		return err
	}

	logger.Info("Generating files...")

	if err := artifacts.MaterializeIgnore(artifacts.IgnoreFile, cfg.DBMount); err != nil {
		return err
	}
	if err := utils.GitInit(); err != nil {
		return err
	}

	compose, err := artifacts.RenderCompose()
	if err != nil {
		return err
	}
	if err := artifacts.Materialize(artifacts.ComposeFile, compose); err != nil {
		return err
	}
	if err := artifacts.Materialize(artifacts.EnvFile, artifacts.RenderDotEnv(cfg)); err != nil {
		return err
	}
	if err := artifacts.Materialize(artifacts.SiteFile(cfg.Hostname), artifacts.RenderNginxConf(cfg.Hostname, cfg.HostPort)); err != nil {
		return err
	}

	logger.Success("Files generated")
	return nil
}
