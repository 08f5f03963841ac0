package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledLoggerWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "test")
	l.SetOutput(&buf)
	l.SetEnabled(false)

	l.Info("should not appear")
	assert.Empty(t, buf.String())
}

func TestEnabledLoggerWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "test")
	l.SetOutput(&buf)

	l.Info("hello %s", "world")
	assert.True(t, strings.Contains(buf.String(), "hello world"))
}

func TestFatalPanics(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "test")
	l.SetOutput(&buf)

	assert.Panics(t, func() { l.Fatal("boom %d", 1) })
}
