package actions

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webup/hostup/artifacts"
	"webup/hostup/domain"
	"webup/hostup/utils"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

func writeArtifacts(t *testing.T) {
	t.Helper()
	for _, file := range []string{artifacts.EnvFile, artifacts.ComposeFile, artifacts.IgnoreFile, "example.com.nginx.conf"} {
		require.NoError(t, os.WriteFile(file, []byte("content"), 0644))
	}
}

func TestRemoveProjectFiles(t *testing.T) {
	chdir(t, t.TempDir())
	writeArtifacts(t)
	require.NoError(t, os.Mkdir(".git", 0755))
	require.NoError(t, os.WriteFile("unrelated.txt", []byte("keep"), 0644))

	require.NoError(t, removeProjectFiles("."))

	for _, file := range []string{artifacts.EnvFile, artifacts.ComposeFile, artifacts.IgnoreFile, "example.com.nginx.conf", ".git"} {
		_, err := os.Stat(file)
		assert.True(t, os.IsNotExist(err), "%s should have been removed", file)
	}
	_, err := os.Stat("unrelated.txt")
	assert.NoError(t, err)
}

func TestRemoveProjectFilesWithoutGitRepository(t *testing.T) {
	chdir(t, t.TempDir())
	writeArtifacts(t)

	assert.NoError(t, removeProjectFiles("."))
}

func TestRemoveProjectFilesWithNothingToRemove(t *testing.T) {
	chdir(t, t.TempDir())

	assert.NoError(t, removeProjectFiles("."))
}

func TestSiteConfs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.example.com.nginx.conf"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.example.com.nginx.conf"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.nginx.conf"), 0755))

	confs, err := siteConfs(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.example.com.nginx.conf", "b.example.com.nginx.conf"}, confs)
}

func TestBackupArchivesArtifacts(t *testing.T) {
	chdir(t, t.TempDir())
	writeArtifacts(t)

	require.NoError(t, BackupActionHandler(domain.ExecutionContext{}, ""))

	archives, err := filepath.Glob("backup-*.tar.gz")
	require.NoError(t, err)
	require.Len(t, archives, 1)

	// staging directory is cleaned up
	_, err = os.Stat(".hostup_backup")
	assert.True(t, os.IsNotExist(err))

	// archived files stay in place
	_, err = os.Stat(artifacts.EnvFile)
	assert.NoError(t, err)
}

func TestBackupEncryptsArchiveWithPassphrase(t *testing.T) {
	chdir(t, t.TempDir())
	writeArtifacts(t)

	require.NoError(t, BackupActionHandler(domain.ExecutionContext{}, "secret"))

	archives, err := filepath.Glob("backup-*.tar.gz.enc")
	require.NoError(t, err)
	require.Len(t, archives, 1)

	encrypted, err := os.Open(archives[0])
	require.NoError(t, err)
	defer encrypted.Close()

	var decrypted bytes.Buffer
	require.NoError(t, utils.Decrypt(encrypted, &decrypted, []byte("secret")))

	// the decrypted payload is the gzip archive
	require.GreaterOrEqual(t, decrypted.Len(), 2)
	assert.Equal(t, []byte{0x1f, 0x8b}, decrypted.Bytes()[:2])
}

func TestBackupRecoversFromStaleStagingDirectory(t *testing.T) {
	chdir(t, t.TempDir())
	writeArtifacts(t)

	// leftover from a crashed run
	require.NoError(t, os.MkdirAll(filepath.Join(".hostup_backup", "backup"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(".hostup_backup", "backup", "stale"), []byte("x"), 0644))

	require.NoError(t, BackupActionHandler(domain.ExecutionContext{}, ""))

	archives, err := filepath.Glob("backup-*.tar.gz")
	require.NoError(t, err)
	assert.Len(t, archives, 1)

	_, err = os.Stat(".hostup_backup")
	assert.True(t, os.IsNotExist(err))
}

func TestBackupWithNothingToArchive(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, BackupActionHandler(domain.ExecutionContext{}, ""))

	archives, err := filepath.Glob("backup-*")
	require.NoError(t, err)
	assert.Empty(t, archives)
}
