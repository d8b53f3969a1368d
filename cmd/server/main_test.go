package main

import (
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
)

func TestLogLevel(t *testing.T) {
	assert.Equal(t, log.DEBUG, logLevel("DEBUG"))
	assert.Equal(t, log.WARN, logLevel("warning"))
	assert.Equal(t, log.OFF, logLevel("off"))
	assert.Equal(t, log.INFO, logLevel("verbose"))
}
