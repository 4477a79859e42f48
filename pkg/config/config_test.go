package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_WhenAllVariablesSet_ThenReturnsConfigWithSetValues(t *testing.T) {
	// Arrange
	t.Setenv("DATABASE_URL", "user:pass@tcp(localhost:3306)/events?parseTime=true")
	t.Setenv("KAFKA_BROKERS", "kafka1:9092,kafka2:9092")
	t.Setenv("KAFKA_TOPIC", "records")
	t.Setenv("API_PORT", "9000")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_ENCODING", "console")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000,https://example.com")
	t.Setenv("OIDC_ISSUER_URL", "https://clerk.example.com")
	t.Setenv("OIDC_CLIENT_ID", "web")

	// Act
	cfg, err := FromEnv()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "user:pass@tcp(localhost:3306)/events?parseTime=true", cfg.DatabaseURL)
	assert.Equal(t, []string{"kafka1:9092", "kafka2:9092"}, cfg.Brokers())
	assert.Equal(t, "records", cfg.KafkaTopic)
	assert.Equal(t, "9000", cfg.APIPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogEncoding)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "https://clerk.example.com", cfg.OIDCIssuerURL)
	assert.Equal(t, "web", cfg.OIDCClientID)
}

func TestFromEnv_WhenNoVariablesSet_ThenReturnsDefaults(t *testing.T) {
	// Arrange
	for _, key := range []string{
		"DATABASE_URL", "KAFKA_BROKERS", "KAFKA_TOPIC", "API_PORT", "ENVIRONMENT",
		"LOG_LEVEL", "LOG_ENCODING", "CORS_ORIGINS", "OIDC_ISSUER_URL", "OIDC_CLIENT_ID",
	} {
		unsetForTest(t, key)
	}

	// Act
	cfg, err := FromEnv()

	// Assert
	require.NoError(t, err)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Nil(t, cfg.Brokers(), "change feed is off unless brokers are configured")
	assert.Equal(t, "event-records", cfg.KafkaTopic)
	assert.Equal(t, "8080", cfg.APIPort)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogEncoding)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.OIDCIssuerURL)
}

func TestSplitOrigins_WhenMultipleOriginsWithWhitespace_ThenTrimsCorrectly(t *testing.T) {
	origins := splitOrigins(" http://localhost:3000 , https://example.com ,  ")

	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, origins)
}

func TestSplitOrigins_WhenEmpty_ThenReturnsWildcard(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins(""))
}

func TestSplitOrigins_WhenOnlyWhitespace_ThenReturnsWildcard(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins("   ,  ,  "))
	assert.Equal(t, []string{"*"}, splitOrigins(" , "))
}

func TestFromEnv_WhenCORSOriginsBlank_ThenWildcard(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " , ")

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestBrokers_WhenBlank_ThenDisabled(t *testing.T) {
	assert.Nil(t, App{KafkaBrokers: " , "}.Brokers())
}
