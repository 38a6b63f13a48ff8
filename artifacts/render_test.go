package artifacts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"webup/hostup/domain"
)

func TestDotEnvRoundTrip(t *testing.T) {
	cfg := domain.Config{
		Hostname:     "blog.example.com",
		HostPort:     "8080",
		DBMount:      "db_data",
		DBPasswd:     "user-secret",
		DBRootPasswd: "root-secret",
	}

	path := filepath.Join(t.TempDir(), EnvFile)
	require.NoError(t, os.WriteFile(path, []byte(RenderDotEnv(cfg)), 0644))

	parsed, err := ParseDotEnv(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}

func TestRenderDotEnvKeyOrder(t *testing.T) {
	out := RenderDotEnv(domain.Config{
		Hostname:     "example.com",
		HostPort:     "8080",
		DBMount:      "db_data",
		DBPasswd:     "a",
		DBRootPasswd: "b",
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "DB_MNT=db_data", lines[0])
	assert.Equal(t, "DB_ROOT_PASSWD=b", lines[1])
	assert.Equal(t, "DB_PASSWD=a", lines[2])
	assert.Equal(t, "HOST_PORT=8080", lines[3])
	assert.Equal(t, "HOSTNAME=example.com", lines[4])
}

func TestParseDotEnvIgnoresCommentsAndUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), EnvFile)
	content := "# generated\nHOSTNAME=example.com\nOTHER=value\n\nHOST_PORT=9000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	parsed, err := ParseDotEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "example.com", parsed.Hostname)
	assert.Equal(t, "9000", parsed.HostPort)
	assert.Empty(t, parsed.DBMount)
}

func TestRenderCompose(t *testing.T) {
	out, err := RenderCompose()
	require.NoError(t, err)

	var manifest struct {
		Services map[string]struct {
			Image       string   `yaml:"image"`
			Volumes     []string `yaml:"volumes"`
			Ports       []string `yaml:"ports"`
			Restart     string   `yaml:"restart"`
			DependsOn   []string `yaml:"depends_on"`
			Environment []string `yaml:"environment"`
			Expose      []int    `yaml:"expose"`
		} `yaml:"services"`
		Volumes map[string]interface{} `yaml:"volumes"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &manifest))

	db, ok := manifest.Services["db"]
	require.True(t, ok)
	assert.Equal(t, "mariadb:10.6.4-focal", db.Image)
	assert.Equal(t, []string{"${DB_MNT}:/var/lib/mysql"}, db.Volumes)
	assert.Equal(t, "always", db.Restart)
	assert.Equal(t, []int{3306}, db.Expose)
	assert.Contains(t, db.Environment, "MYSQL_ROOT_PASSWORD=${DB_ROOT_PASSWD}")
	assert.Contains(t, db.Environment, "MYSQL_PASSWORD=${DB_PASSWD}")

	wp, ok := manifest.Services["wordpress"]
	require.True(t, ok)
	assert.Equal(t, "wordpress:latest", wp.Image)
	assert.Equal(t, []string{"${HOST_PORT}:80"}, wp.Ports)
	assert.Equal(t, []string{"db"}, wp.DependsOn)
	assert.Contains(t, wp.Environment, "WORDPRESS_DB_HOST=db")
	assert.Contains(t, wp.Environment, "WORDPRESS_DB_PASSWORD=${DB_PASSWD}")

	assert.Contains(t, manifest.Volumes, "db_data")
}

func TestRenderComposeDeterministic(t *testing.T) {
	first, err := RenderCompose()
	require.NoError(t, err)
	second, err := RenderCompose()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderNginxConf(t *testing.T) {
	out := RenderNginxConf("blog.example.com", "8080")

	assert.Contains(t, out, "server_name blog.example.com;")
	assert.Contains(t, out, "proxy_pass http://127.0.0.1:8080;")
	assert.Contains(t, out, "proxy_redirect http://127.0.0.1:8080 https://blog.example.com;")
	assert.Contains(t, out, "proxy_cookie_domain http://127.0.0.1:8080 blog.example.com;")
	assert.Contains(t, out, "proxy_set_header X-Forwarded-Proto https;")
	assert.Contains(t, out, "listen 80;")
}

func TestRenderGitignore(t *testing.T) {
	out := RenderGitignore("db_data")
	assert.Equal(t, "\n# Ignore the database data folder\ndb_data/\n", out)
}
