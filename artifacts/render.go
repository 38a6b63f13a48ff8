package artifacts

import (
	"fmt"
	"os"
	"strings"

	"webup/hostup/domain"

	"gopkg.in/yaml.v3"
)

// RenderDotEnv renders the environment file from a configuration record.
func RenderDotEnv(cfg domain.Config) string {
	return fmt.Sprintf(`DB_MNT=%s
DB_ROOT_PASSWD=%s
DB_PASSWD=%s
HOST_PORT=%s
HOSTNAME=%s
`, cfg.DBMount, cfg.DBRootPasswd, cfg.DBPasswd, cfg.HostPort, cfg.Hostname)
}

// ParseDotEnv reads a previously persisted environment file back into a
// configuration record. Unknown keys are ignored, missing keys are left
// empty.
func ParseDotEnv(path string) (domain.Config, error) {
	var cfg domain.Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch key {
		case "DB_MNT":
			cfg.DBMount = value
		case "DB_ROOT_PASSWD":
			cfg.DBRootPasswd = value
		case "DB_PASSWD":
			cfg.DBPasswd = value
		case "HOST_PORT":
			cfg.HostPort = value
		case "HOSTNAME":
			cfg.Hostname = value
		}
	}
	return cfg, nil
}

type composeService struct {
	Image       string   `yaml:"image"`
	Command     string   `yaml:"command,omitempty"`
	Volumes     []string `yaml:"volumes,omitempty"`
	Ports       []string `yaml:"ports,omitempty"`
	Restart     string   `yaml:"restart"`
	DependsOn   []string `yaml:"depends_on,omitempty"`
	Environment []string `yaml:"environment,omitempty"`
	Expose      []int    `yaml:"expose,omitempty"`
}

type composeManifest struct {
	Services map[string]composeService `yaml:"services"`
	Volumes  map[string]interface{}    `yaml:"volumes"`
}

// RenderCompose renders the orchestration manifest. Per-deployment values
// are referenced through the environment file, so the manifest itself is
// identical for every site.
func RenderCompose() (string, error) {
	manifest := composeManifest{
		Services: map[string]composeService{
			"db": {
				Image:   "mariadb:10.6.4-focal",
				Command: "--default-authentication-plugin=mysql_native_password",
				Volumes: []string{"${DB_MNT}:/var/lib/mysql"},
				Restart: "always",
				Environment: []string{
					"MYSQL_ROOT_PASSWORD=${DB_ROOT_PASSWD}",
					"MYSQL_DATABASE=wordpress",
					"MYSQL_USER=wordpress",
					"MYSQL_PASSWORD=${DB_PASSWD}",
				},
				Expose: []int{3306},
			},
			"wordpress": {
				Image:     "wordpress:latest",
				Ports:     []string{"${HOST_PORT}:80"},
				Restart:   "always",
				DependsOn: []string{"db"},
				Environment: []string{
					"WORDPRESS_DB_HOST=db",
					"WORDPRESS_DB_USER=wordpress",
					"WORDPRESS_DB_PASSWORD=${DB_PASSWD}",
					"WORDPRESS_DB_NAME=wordpress",
				},
			},
		},
		Volumes: map[string]interface{}{"db_data": nil},
	}

	out, err := yaml.Marshal(manifest)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// RenderNginxConf renders the reverse proxy site file. The upstream is the
// published application port on the loopback interface; redirects, cookie
// domains and forwarding headers are rewritten for a TLS-terminating proxy.
func RenderNginxConf(hostname string, port string) string {
	upstream := fmt.Sprintf("http://127.0.0.1:%s", port)

	return fmt.Sprintf(`server {
    listen 80;
    server_name %[1]s;

    location / {
        proxy_pass %[2]s;
        proxy_redirect %[2]s https://%[1]s;

        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;

        proxy_set_header Host $host;

        proxy_cookie_domain %[2]s %[1]s;
        proxy_set_header X-Forwarded-Proto https;
    }
}
`, hostname, upstream)
}

// RenderGitignore renders the stanza keeping the database data folder out of
// version control.
func RenderGitignore(mountPath string) string {
	return fmt.Sprintf("\n# Ignore the database data folder\n%s/\n", mountPath)
}
