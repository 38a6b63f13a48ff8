package domain

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command is a thin wrapper around an external tool invocation. Every
// collaborator (docker-compose, git, certbot, nginx) is driven through it.
type Command struct {
	Name string
	Args []string
}

func NewCommand(list []string) Command {
	name := list[0]
	args := list[1:]

	return Command{Name: name, Args: args}
}

func NewComposeCommand(args []string) Command {
	return Command{Name: "docker-compose", Args: args}
}

func (c Command) String() string {
	return fmt.Sprintf("%s %s", c.Name, strings.Join(c.Args, " "))
}

// Execute runs the command wired to the terminal. A non-zero exit status is
// returned as an error.
func (c Command) Execute() error {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	fmt.Printf("Executing: %s\n", c)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("'%s' failed: %w", c, err)
	}
	return nil
}

// GetResult runs the command silently and returns its trimmed stdout.
func (c Command) GetResult() (string, error) {
	output, err := exec.Command(c.Name, c.Args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
