package taso_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/qcopt/taso/taso"
)

func TestDefaultConfig_Values(t *testing.T) {
	cfg := taso.DefaultConfig()
	assert.Equal(t, taso.DefaultQueueCapacity, cfg.QueueCapacity)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, 1, cfg.NumThreads)
	assert.NotNil(t, cfg.Logger)
}

func TestWithQueueCapacity_PanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() {
		taso.WithQueueCapacity(0)(&taso.Config{})
	})
}

func TestWithThreads_PanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() {
		taso.WithThreads(-1)(&taso.Config{})
	})
}

func TestWithLogger_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() {
		taso.WithLogger(nil)(&taso.Config{})
	})
}

func TestWithTimeout_SetsField(t *testing.T) {
	cfg := taso.Config{}
	taso.WithTimeout(5 * time.Second)(&cfg)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}
