package checks

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"webup/hostup/artifacts"
	"webup/hostup/domain"
	"webup/hostup/logger"
	"webup/hostup/utils"
)

// DirectoryClean warns when the working directory already contains generated
// artifacts.
func DirectoryClean() Check {
	return Check{
		Name:       "directory-is-clean",
		Policy:     WarnConfirm,
		LogSuccess: true,
		Run: func() Result {
			for _, file := range []string{artifacts.EnvFile, artifacts.ComposeFile, artifacts.IgnoreFile} {
				if isRegularFile(file) {
					return Result{OK: false, Message: "Files already present in the directory"}
				}
			}
			return Result{OK: true, Message: "Current directory is clean"}
		},
	}
}

// ArtifactsExist requires all generated artifacts to be present.
func ArtifactsExist() Check {
	return Check{
		Name:       "artifacts-exist",
		Policy:     Fatal,
		LogSuccess: true,
		Run: func() Result {
			for _, file := range []string{artifacts.EnvFile, artifacts.ComposeFile, artifacts.IgnoreFile} {
				if !isRegularFile(file) {
					return Result{OK: false, Message: "Files not generated"}
				}
			}
			return Result{OK: true, Message: "Files generated"}
		},
	}
}

// ProxyConfigInstalled requires the site file for the hostname in the
// daemon's available-sites directory.
func ProxyConfigInstalled(hostname string) Check {
	return Check{
		Name:   "proxy-config-installed",
		Policy: Fatal,
		Run: func() Result {
			if !isRegularFile(utils.AvailableSitePath(artifacts.SiteFile(hostname))) {
				return Result{OK: false, Message: "Nginx configuration not installed"}
			}
			return Result{OK: true, Message: "Nginx configuration installed"}
		},
	}
}

// ProxyConfigEnabled requires the enabled-sites symlink for the hostname.
func ProxyConfigEnabled(hostname string) Check {
	return Check{
		Name:       "proxy-config-enabled",
		Policy:     Fatal,
		LogSuccess: true,
		Run: func() Result {
			info, err := os.Lstat(utils.EnabledSitePath(artifacts.SiteFile(hostname)))
			if err != nil || info.Mode()&os.ModeSymlink == 0 {
				return Result{OK: false, Message: "Nginx configuration not enabled"}
			}
			return Result{OK: true, Message: "Nginx configuration enabled"}
		},
	}
}

func RunningAsRoot() Check {
	return Check{
		Name:   "running-with-elevated-privilege",
		Policy: Fatal,
		Run: func() Result {
			if os.Geteuid() != 0 {
				return Result{OK: false, Message: "This tool must be run as root"}
			}
			return Result{OK: true, Message: "Running as root"}
		},
	}
}

func DockerInstalled() Check {
	return toolPresent("container-runtime-present", "docker", "Docker")
}

func ComposeInstalled() Check {
	return toolPresent("orchestration-tool-present", "docker-compose", "Docker Compose")
}

func GitInstalled() Check {
	return toolPresent("version-control-tool-present", "git", "Git")
}

func NginxInstalled() Check {
	return toolPresent("proxy-daemon-present", "nginx", "Nginx")
}

func CertbotInstalled() Check {
	return toolPresent("certificate-tool-present", "certbot", "Certbot")
}

func SystemdInstalled() Check {
	return toolPresent("init-system-present", "systemctl", "Systemd")
}

func toolPresent(name string, binary string, label string) Check {
	return Check{
		Name:   name,
		Policy: Fatal,
		Run: func() Result {
			if _, err := exec.LookPath(binary); err != nil {
				return Result{OK: false, Message: fmt.Sprintf("%s is not installed", label)}
			}
			return Result{OK: true, Message: fmt.Sprintf("%s is installed", label)}
		},
	}
}

// DockerDaemonRunning probes the container daemon. It is a warning rather
// than a hard failure because the daemon may still be starting.
func DockerDaemonRunning() Check {
	return Check{
		Name:   "container-daemon-reachable",
		Policy: WarnConfirm,
		Run: func() Result {
			if !utils.DockerRunning() {
				return Result{OK: false, Message: "Docker is not running"}
			}
			return Result{OK: true, Message: "Docker is running"}
		},
	}
}

// NginxConfigValid runs the daemon's own configuration test.
func NginxConfigValid() Check {
	return Check{
		Name:   "proxy-config-valid",
		Policy: Fatal,
		Run: func() Result {
			if err := utils.NginxTestConfig(); err != nil {
				return Result{OK: false, Message: "Nginx configuration is invalid"}
			}
			return Result{OK: true, Message: "Nginx configuration is valid"}
		},
	}
}

// Kind is the target type of a ValueConvertible check.
type Kind int

const (
	KindString Kind = iota
	KindInt
)

func (k Kind) String() string {
	if k == KindInt {
		return "int"
	}
	return "string"
}

// ValueConvertible validates a raw string against a target type and an
// optional grammar.
func ValueConvertible(raw string, kind Kind, pattern *regexp.Regexp) Check {
	return Check{
		Name:   "value-convertible",
		Policy: Fatal,
		Run: func() Result {
			failure := Result{OK: false, Message: fmt.Sprintf("Argument %q is not convertible to type %s", raw, kind)}
			if pattern != nil && !pattern.MatchString(raw) {
				return failure
			}
			if kind == KindInt {
				if _, err := strconv.Atoi(raw); err != nil {
					return failure
				}
			}
			return Result{OK: true}
		},
	}
}

// DirectoryWriteable probes the working directory by creating and removing a
// temporary file.
func DirectoryWriteable() Check {
	return Check{
		Name:       "directory-writeable",
		Policy:     Fatal,
		LogSuccess: true,
		Run: func() Result {
			probe, err := os.CreateTemp(".", ".hostup-probe-*")
			if err != nil {
				return Result{OK: false, Message: "Current folder is not writeable"}
			}
			probe.Close()
			os.Remove(probe.Name())
			return Result{OK: true, Message: "Current folder is writeable"}
		},
	}
}

func PathExists(path string) Check {
	return Check{
		Name:   "path-exists",
		Policy: Fatal,
		Run: func() Result {
			if _, err := os.Stat(path); err != nil {
				return Result{OK: false, Message: fmt.Sprintf("File %s does not exist", path)}
			}
			return Result{OK: true, Message: fmt.Sprintf("File %s exists", path)}
		},
	}
}

// NoConflictingFlags fails when more than one of the given flags is set.
func NoConflictingFlags(flags ...bool) Check {
	return Check{
		Name:   "no-conflicting-flags",
		Policy: Fatal,
		Run: func() Result {
			set := 0
			for _, flag := range flags {
				if flag {
					set++
				}
			}
			if set > 1 {
				return Result{OK: false, Message: "Conflicting arguments"}
			}
			return Result{OK: true, Message: "No conflicting arguments"}
		},
	}
}

// AddressMatchesPublicIP compares the hostname's resolved address with the
// machine's public address. The lookup service is queried exactly once and
// the value reused for the comparison and the message.
func AddressMatchesPublicIP(hostname string) Check {
	return Check{
		Name:       "address-matches-public-ip",
		Policy:     WarnConfirm,
		LogSuccess: true,
		Run: func() Result {
			addr, err := utils.ResolveHost(hostname)
			if err != nil {
				return Result{OK: false, Message: fmt.Sprintf("Unable to resolve %s: %s", hostname, err)}
			}
			publicIP, err := utils.PublicIP()
			if err != nil {
				return Result{OK: false, Message: fmt.Sprintf("Unable to fetch the public IP: %s", err)}
			}
			if addr != publicIP {
				return Result{OK: false, Message: fmt.Sprintf("Hostname does not resolve to this machine's public IP: %s != %s", addr, publicIP)}
			}
			return Result{OK: true, Message: "Hostname resolves to this machine's public IP"}
		},
	}
}

// NameResolves polls until the hostname resolves, with a one second delay
// between attempts. An interrupt during the wait means "proceed without
// waiting". Once resolved, the public IP comparison is chained in; its
// outcome (after confirmation) decides the result, so the chained failure is
// not prompted for twice.
func NameResolves(ctx domain.ExecutionContext, hostname string) Check {
	return Check{
		Name:       "name-resolves",
		Policy:     Fatal,
		LogSuccess: true,
		Run: func() Result {
			if interrupted := waitForResolution(hostname); interrupted {
				return Result{OK: true, Message: "Continuing without waiting for DNS to resolve"}
			}
			if !Evaluate(ctx, AddressMatchesPublicIP(hostname)) {
				return Result{OK: false}
			}
			return Result{OK: true, Message: "DNS is set up correctly"}
		},
	}
}

func waitForResolution(hostname string) (interrupted bool) {
	stop := claimInterrupt()
	defer releaseInterrupt()

	logged := false
	for {
		if _, err := utils.ResolveHost(hostname); err == nil {
			return false
		}
		if !logged {
			logged = true
			logger.Info("Waiting for DNS to resolve for %s. Press CTRL+C to proceed without waiting...", hostname)
		}
		select {
		case <-stop:
			return true
		case <-time.After(time.Second):
		}
	}
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
