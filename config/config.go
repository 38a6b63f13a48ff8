package config

import (
	"fmt"
	"os"

	"github.com/Songmu/prompter"

	"webup/hostup/artifacts"
	"webup/hostup/checks"
	"webup/hostup/domain"
	"webup/hostup/logger"
	"webup/hostup/utils"
)

// Flags holds the raw values collected from the command line. An empty
// string means the flag was not provided.
type Flags struct {
	Hostname     string
	HostPort     string
	DBMount      string
	DBPasswd     string
	DBRootPasswd string
}

// Resolve builds the effective configuration for this run. Precedence, from
// weakest to strongest: built-in defaults, values persisted in the env file,
// command-line flags, interactive answers. Passwords are generated when no
// layer provides one.
func Resolve(flags Flags, ctx domain.ExecutionContext) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if _, err := os.Stat(artifacts.EnvFile); err == nil {
		persisted, err := artifacts.ParseDotEnv(artifacts.EnvFile)
		if err != nil {
			return cfg, fmt.Errorf("unable to read %s: %w", artifacts.EnvFile, err)
		}
		overlay(&cfg, persisted)
		logger.Info("Loaded existing configuration from %s", artifacts.EnvFile)
	}

	if err := validateFlags(ctx, flags); err != nil {
		return cfg, err
	}
	overlay(&cfg, domain.Config{
		Hostname:     flags.Hostname,
		HostPort:     flags.HostPort,
		DBMount:      flags.DBMount,
		DBPasswd:     flags.DBPasswd,
		DBRootPasswd: flags.DBRootPasswd,
	})

	if ctx.Interactive {
		promptForConfig(&cfg)
	}

	if cfg.DBPasswd == "" {
		cfg.DBPasswd = utils.GenerateToken(16)
	}
	if cfg.DBRootPasswd == "" {
		cfg.DBRootPasswd = utils.GenerateToken(16)
	}

	logger.Info("Configuration:\n"+
		"\t\thostname: %s\n"+
		"\t\thost port: %s\n"+
		"\t\tdatabase mount: %s", cfg.Hostname, cfg.HostPort, cfg.DBMount)

	return cfg, nil
}

func validateFlags(ctx domain.ExecutionContext, flags Flags) error {
	var items []checks.Check
	if flags.Hostname != "" {
		items = append(items, checks.ValueConvertible(flags.Hostname, checks.KindString, domain.HostnameRegexp))
	}
	if flags.HostPort != "" {
		items = append(items, checks.ValueConvertible(flags.HostPort, checks.KindInt, domain.PortRegexp))
	}
	if flags.DBMount != "" {
		items = append(items, checks.ValueConvertible(flags.DBMount, checks.KindString, domain.MountPathRegexp))
	}
	return checks.Gate(ctx, items...)
}

func promptForConfig(cfg *domain.Config) {
	cfg.Hostname = (&prompter.Prompter{
		Message: "Hostname",
		Default: cfg.Hostname,
		Regexp:  domain.HostnameRegexp,
	}).Prompt()
	cfg.HostPort = (&prompter.Prompter{
		Message: "Host port",
		Default: cfg.HostPort,
		Regexp:  domain.PortRegexp,
	}).Prompt()
	cfg.DBMount = (&prompter.Prompter{
		Message: "Database mount path",
		Default: cfg.DBMount,
		Regexp:  domain.MountPathRegexp,
	}).Prompt()
	cfg.DBPasswd = prompter.Prompt("Database password (empty to generate)", cfg.DBPasswd)
	cfg.DBRootPasswd = prompter.Prompt("Database root password (empty to generate)", cfg.DBRootPasswd)
}

func overlay(cfg *domain.Config, values domain.Config) {
	if values.Hostname != "" {
		cfg.Hostname = values.Hostname
	}
	if values.HostPort != "" {
		cfg.HostPort = values.HostPort
	}
	if values.DBMount != "" {
		cfg.DBMount = values.DBMount
	}
	if values.DBPasswd != "" {
		cfg.DBPasswd = values.DBPasswd
	}
	if values.DBRootPasswd != "" {
		cfg.DBRootPasswd = values.DBRootPasswd
	}
}
