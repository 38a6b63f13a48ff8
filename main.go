package main

import (
	"errors"
	"os"

	cli "github.com/jawher/mow.cli"

	"webup/hostup/actions"
	"webup/hostup/checks"
	"webup/hostup/config"
	"webup/hostup/domain"
	"webup/hostup/logger"
)

func main() {

	app := cli.App("hostup", "Provision a WordPress site running behind an nginx reverse proxy")

	app.Version("v version", "hostup 1.0.0")

	hostname := app.String(cli.StringOpt{
		Name:  "n hostname",
		Value: "",
		Desc:  "Hostname the site will be served under",
	})
	hostPort := app.String(cli.StringOpt{
		Name:  "p host-port",
		Value: "",
		Desc:  "Host port the application container publishes",
	})
	dbMount := app.String(cli.StringOpt{
		Name:  "m db-mnt",
		Value: "",
		Desc:  "Path where the database data folder is mounted",
	})
	dbPasswd := app.String(cli.StringOpt{
		Name:  "d db-passwd",
		Value: "",
		Desc:  "Database password (generated when omitted)",
	})
	dbRootPasswd := app.String(cli.StringOpt{
		Name:  "r db-root-passwd",
		Value: "",
		Desc:  "Database root password (generated when omitted)",
	})

	install := app.Bool(cli.BoolOpt{
		Name: "I install",
		Desc: "Generate the files, start the containers and install the nginx configuration",
	})
	uninstall := app.Bool(cli.BoolOpt{
		Name: "U uninstall",
		Desc: "Stop the containers and remove the nginx configuration",
	})
	certbot := app.Bool(cli.BoolOpt{
		Name: "C certbot",
		Desc: "Request a TLS certificate for the hostname",
	})
	cleanup := app.Bool(cli.BoolOpt{
		Name: "c cleanup",
		Desc: "Remove the containers, their volumes and every generated file",
	})
	backup := app.Bool(cli.BoolOpt{
		Name: "b backup",
		Desc: "Archive the generated files before a cleanup",
	})
	backupKey := app.String(cli.StringOpt{
		Name:  "backup-key",
		Value: "",
		Desc:  "Passphrase used to encrypt the backup archive",
	})
	interactive := app.Bool(cli.BoolOpt{
		Name: "i interactive",
		Desc: "Prompt for each configuration value",
	})
	silent := app.Bool(cli.BoolOpt{
		Name: "s silent",
		Desc: "Never prompt; warnings are logged and the run continues",
	})

	app.Action = func() {
		ctx := domain.ExecutionContext{
			Silent:      *silent,
			Interactive: *interactive,
		}

		checks.WatchInterrupts()

		must(checks.Gate(ctx,
			checks.NoConflictingFlags(*install, *uninstall),
			checks.NoConflictingFlags(*uninstall, *certbot),
		))

		cfg, err := config.Resolve(config.Flags{
			Hostname:     *hostname,
			HostPort:     *hostPort,
			DBMount:      *dbMount,
			DBPasswd:     *dbPasswd,
			DBRootPasswd: *dbRootPasswd,
		}, ctx)
		must(err)

		for _, s := range pipeline(*install, *uninstall, *certbot, *cleanup, *backup) {
			switch s {
			case stepBackup:
				must(actions.BackupActionHandler(ctx, *backupKey))
			case stepCleanup:
				must(actions.CleanupActionHandler(ctx, cfg))
			case stepConfigure:
				must(actions.ConfigureActionHandler(ctx, cfg))
			case stepInstall:
				must(actions.InstallActionHandler(ctx, cfg))
			case stepUninstall:
				must(actions.UninstallActionHandler(ctx, cfg))
			case stepCertbot:
				must(actions.CertbotActionHandler(ctx, cfg))
			}
		}

		logger.Success("All actions completed successfully")
	}

	app.Run(os.Args)
}

type step int

const (
	stepBackup step = iota
	stepCleanup
	stepConfigure
	stepInstall
	stepUninstall
	stepCertbot
)

// pipeline maps the mode flags to the ordered list of steps to run. Cleanup
// runs before install or certbot, and after uninstall. The default mode with
// no action flag is a plain configure.
func pipeline(install, uninstall, certbot, cleanup, backup bool) []step {
	var steps []step

	if uninstall {
		steps = append(steps, stepUninstall)
		if cleanup {
			if backup {
				steps = append(steps, stepBackup)
			}
			steps = append(steps, stepCleanup)
		}
		return steps
	}

	if cleanup {
		if backup {
			steps = append(steps, stepBackup)
		}
		steps = append(steps, stepCleanup)
	}

	switch {
	case install:
		steps = append(steps, stepConfigure, stepInstall)
		if certbot {
			steps = append(steps, stepCertbot)
		}
	case certbot:
		steps = append(steps, stepCertbot)
	case !cleanup:
		steps = append(steps, stepConfigure)
	}
	return steps
}

// must exits the app when a step fails. Check failures are already logged by
// the gate, so only other errors are reported here.
func must(err error) {
	if err == nil {
		return
	}
	if !errors.Is(err, checks.ErrAborted) {
		logger.Error("%s", err)
	}
	cli.Exit(1)
}
