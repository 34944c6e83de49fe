package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "gemini-1.5-flash", config.Model)
	assert.InDelta(t, 0.1, config.Temperature, 0.0001)
	assert.Equal(t, 60*time.Second, config.Timeout)
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	custom := config.WithModel("gemini-2.5-flash")

	// Original should be unchanged
	assert.Equal(t, DefaultModel, config.Model)
	assert.Equal(t, "gemini-2.5-flash", custom.Model)
	assert.Equal(t, config.Timeout, custom.Timeout)
}

func TestWithModel_Empty(t *testing.T) {
	config := DefaultConfig()
	assert.Same(t, config, config.WithModel(""))
}
