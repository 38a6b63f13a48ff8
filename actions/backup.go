package actions

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/jhoonb/archivex"

	"webup/hostup/artifacts"
	"webup/hostup/domain"
	"webup/hostup/logger"
	"webup/hostup/utils"
)

// BackupActionHandler archives the generated files (environment file,
// orchestration manifest, ignore file and site files) into a timestamped
// tar.gz in the working directory. With a passphrase the archive is
// encrypted and gets a .enc suffix.
func BackupActionHandler(ctx domain.ExecutionContext, passphrase string) error {
	backupDir := ".hostup_backup"
	// a crashed run may have left the staging directory behind
	if err := os.RemoveAll(backupDir); err != nil {
		return fmt.Errorf("unable to clear the backup directory: %w", err)
	}
	if err := os.Mkdir(backupDir, os.ModePerm); err != nil {
		return fmt.Errorf("unable to create a backup directory: %w", err)
	}
	defer os.RemoveAll(backupDir)

	stagingDir := path.Join(backupDir, "backup")
	if err := os.MkdirAll(stagingDir, 0755); err != nil {
		return err
	}

	files := []string{artifacts.EnvFile, artifacts.ComposeFile, artifacts.IgnoreFile}
	confs, err := siteConfs(".")
	if err != nil {
		return err
	}
	files = append(files, confs...)

	staged := 0
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := os.Link(file, path.Join(stagingDir, file)); err != nil {
			return fmt.Errorf("unable to stage %s for backup: %w", file, err)
		}
		staged++
	}
	if staged == 0 {
		logger.Warn("Nothing to back up")
		return nil
	}

	tar := new(archivex.TarFile)
	tar.Create(path.Join(backupDir, "backup_archive.tar.gz"))
	tar.AddAll(stagingDir, false)
	tar.Close()

	now := time.Now().UTC()
	year, month, day := now.Date()
	hour, minutes, seconds := now.Clock()
	archiveFilename := fmt.Sprintf("backup-%d%02d%02d_%02d%02d%02d.tar.gz", year, month, day, hour, minutes, seconds)

	if passphrase != "" {
		archiveFilename += ".enc"
		if err := encryptArchive(path.Join(backupDir, "backup_archive.tar.gz"), archiveFilename, passphrase); err != nil {
			return fmt.Errorf("unable to encrypt the backup file: %w", err)
		}
	} else {
		if err := os.Rename(path.Join(backupDir, "backup_archive.tar.gz"), archiveFilename); err != nil {
			return fmt.Errorf("unable to create the backup file: %w", err)
		}
	}

	logger.Success("Backup saved to %s", archiveFilename)
	return nil
}

func encryptArchive(src string, dst string, passphrase string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	return utils.Encrypt(in, out, []byte(passphrase))
}
