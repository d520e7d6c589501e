package main

import (
	"errors"
	"io"
	"testing"

	"github.com/SNMDESERT/peak-finder/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type calls struct {
	url  string
	up   int
	down int
}

func fakeMigrator(c *calls, err error) migrator {
	return migrator{
		up: func(url string, _ *zap.Logger) error {
			c.url = url
			c.up++
			return err
		},
		down: func(url string, n int, _ *zap.Logger) error {
			c.url = url
			c.down = n
			return err
		},
	}
}

func TestRunUpByDefault(t *testing.T) {
	var c calls
	require.NoError(t, run(nil, config.Config{PostgresURL: "postgres://cfg"}, fakeMigrator(&c, nil), io.Discard))
	assert.Equal(t, 1, c.up)
	assert.Equal(t, "postgres://cfg", c.url)
}

func TestRunDown(t *testing.T) {
	var c calls
	require.NoError(t, run([]string{"-down", "2", "-database", "postgres://flag"}, config.Config{}, fakeMigrator(&c, nil), io.Discard))
	assert.Equal(t, 2, c.down)
	assert.Zero(t, c.up)
	assert.Equal(t, "postgres://flag", c.url)
}

func TestRunErrors(t *testing.T) {
	var c calls
	assert.Error(t, run([]string{"-bogus"}, config.Config{}, fakeMigrator(&c, nil), io.Discard))
	assert.Error(t, run(nil, config.Config{}, fakeMigrator(&c, errors.New("boom")), io.Discard))
}
