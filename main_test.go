package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type trackingCloser struct {
	closed bool
	err    error
}

func (c *trackingCloser) Close() error {
	c.closed = true
	return c.err
}

func TestRunAndClose(t *testing.T) {
	t.Run("program error still closes the log", func(t *testing.T) {
		c := &trackingCloser{}
		err := runAndClose(func() error { return errors.New("tty gone") }, c)
		assert.True(t, c.closed)
		assert.ErrorContains(t, err, "tty gone")
	})

	t.Run("clean exit", func(t *testing.T) {
		c := &trackingCloser{}
		assert.NoError(t, runAndClose(func() error { return nil }, c))
		assert.True(t, c.closed)
	})

	t.Run("close failure is reported", func(t *testing.T) {
		c := &trackingCloser{err: errors.New("disk full")}
		assert.ErrorContains(t, runAndClose(func() error { return nil }, c), "close log file")
	})
}
