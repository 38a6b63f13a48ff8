package utils

import "webup/hostup/domain"

// ComposeUp brings the orchestrated services up in the background.
func ComposeUp() error {
	return domain.NewComposeCommand([]string{"up", "-d"}).Execute()
}

// ComposeDown stops and removes the services, optionally with their volumes.
func ComposeDown(removeVolumes bool) error {
	args := []string{"down"}
	if removeVolumes {
		args = append(args, "--volumes")
	}
	return domain.NewComposeCommand(args).Execute()
}

// DockerRunning reports whether the container daemon answers.
func DockerRunning() bool {
	_, err := domain.NewCommand([]string{"docker", "info"}).GetResult()
	return err == nil
}
