package actions

import (
	"webup/hostup/checks"
	"webup/hostup/domain"
	"webup/hostup/logger"
	"webup/hostup/utils"
)

// CertbotActionHandler requests a TLS certificate for the configured
// hostname. It requires the proxy configuration to be installed and enabled,
// and waits for the hostname to resolve before calling the issuer.
func CertbotActionHandler(ctx domain.ExecutionContext, cfg domain.Config) error {
	err := checks.Gate(ctx,
		checks.ProxyConfigInstalled(cfg.Hostname),
		checks.ProxyConfigEnabled(cfg.Hostname),
		checks.NginxInstalled(),
		checks.CertbotInstalled(),
		checks.NameResolves(ctx, cfg.Hostname),
	)
	if err != nil {
		return err
	}

	logger.Info("Running certbot...")
	if err := utils.Certbot(cfg.Hostname); err != nil {
		return err
	}

	logger.Success("Certbot complete")
	return nil
}
