package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8090, config.APIServer.Port)
	assert.Equal(t, "gavel", config.APIServer.Name)
	assert.Equal(t, "X-Gavel-Firm-Id", config.APIServer.FirmHeader)
	assert.Equal(t, "X-Gavel-Lawyer-Id", config.APIServer.LawyerHeader)

	// The trace section nests under server so the header names reach the
	// middleware, which is configured from APIServer.Trace.
	assert.Equal(t, "X-Gavel-Trace-Id", config.APIServer.Trace.TraceHeader)
	assert.Equal(t, "X-Gavel-Request-Id", config.APIServer.Trace.RequestHeader)

	assert.Equal(t, "0 6 * * *", config.Digest.CRON)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GAVEL_SERVER_PORT", "9191")
	t.Setenv("GAVEL_SERVER_TRACE_TRACE_HEADER", "X-Upstream-Trace-Id")

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, config.APIServer.Port)
	assert.Equal(t, "X-Upstream-Trace-Id", config.APIServer.Trace.TraceHeader)
}
