package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_CONFIG_KEY", "valor")
	assert.Equal(t, "valor", getEnv("TEST_CONFIG_KEY", "fallback"))
	assert.Equal(t, "fallback", getEnv("TEST_CONFIG_MISSING", "fallback"))
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		expected bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"false", true, false},
		{"0", true, false},
		{"whatever", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_CONFIG_BOOL", tt.value)
			}
			assert.Equal(t, tt.expected, getEnvBool("TEST_CONFIG_BOOL", tt.fallback))
		})
	}
}

func TestValidateJWTSecretOutsideProduction(t *testing.T) {
	// Short or default secrets only warn outside production
	assert.NoError(t, ValidateJWTSecret("short", "development"))
	assert.NoError(t, ValidateJWTSecret("a-perfectly-long-random-secret-value", "development"))
}

func TestGenerateSecureSecret(t *testing.T) {
	first := GenerateSecureSecret()
	second := GenerateSecureSecret()
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
	assert.GreaterOrEqual(t, len(first), MinJWTSecretLength)
}
