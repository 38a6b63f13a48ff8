package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandString(t *testing.T) {
	cmd := NewCommand([]string{"git", "init"})
	assert.Equal(t, "git init", cmd.String())
}

func TestNewComposeCommand(t *testing.T) {
	cmd := NewComposeCommand([]string{"up", "-d"})
	assert.Equal(t, "docker-compose", cmd.Name)
	assert.Equal(t, []string{"up", "-d"}, cmd.Args)
}
