package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenvDefault(t *testing.T) {
	t.Setenv("SOME_KEY", "")
	assert.Equal(t, "fallback", getenv("SOME_KEY", "fallback"))

	t.Setenv("SOME_KEY", "set")
	assert.Equal(t, "set", getenv("SOME_KEY", "fallback"))
}

func TestEnvIntDefaultOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	assert.Equal(t, 5, envInt("SOME_INT", 5))

	t.Setenv("SOME_INT", "12")
	assert.Equal(t, 12, envInt("SOME_INT", 5))
}

func TestEnvFloatDefaultOnGarbage(t *testing.T) {
	t.Setenv("SOME_FLOAT", "high")
	assert.Equal(t, 0.5, envFloat("SOME_FLOAT", 0.5))

	t.Setenv("SOME_FLOAT", "0.9")
	assert.Equal(t, 0.9, envFloat("SOME_FLOAT", 0.5))
}
