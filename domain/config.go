package domain

import "regexp"

// Grammars shared by CLI flag validation and the interactive prompts.
var (
	HostnameRegexp  = regexp.MustCompile(`^([a-zA-Z0-9]+\.)*[a-zA-Z0-9]+$`)
	PortRegexp      = regexp.MustCompile(`^[0-9]{1,5}$`)
	MountPathRegexp = regexp.MustCompile(`^[^ \t\n\\]+$`)
)

// Config is the authoritative configuration record for the managed site.
// It is assembled once per invocation and not mutated afterwards.
type Config struct {
	Hostname     string
	HostPort     string
	DBMount      string
	DBPasswd     string
	DBRootPasswd string
}

// DefaultConfig returns the built-in defaults. Passwords are left empty and
// generated when the configuration is resolved for the first time.
func DefaultConfig() Config {
	return Config{
		Hostname: "localhost",
		HostPort: "8080",
		DBMount:  "db_data",
	}
}
