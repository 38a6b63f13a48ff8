package utils

import (
	"context"
	"fmt"

	"github.com/coreos/go-systemd/v22/dbus"
)

const proxyUnit = "nginx.service"

// ReloadNginx reloads (or starts) the proxy daemon through the systemd
// system bus and waits for the job to finish.
func ReloadNginx(ctx context.Context) error {
	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to systemd: %w", err)
	}
	defer conn.Close()

	done := make(chan string, 1)
	if _, err := conn.ReloadOrRestartUnitContext(ctx, proxyUnit, "replace", done); err != nil {
		return fmt.Errorf("failed to reload %s: %w", proxyUnit, err)
	}
	if result := <-done; result != "done" {
		return fmt.Errorf("reload of %s finished with result %q", proxyUnit, result)
	}
	return nil
}
