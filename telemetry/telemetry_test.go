package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDisabledWithoutCollector(t *testing.T) {
	shutdown, err := Setup(context.Background(), "  ", "productconsole")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestEndpointDefaultsPort(t *testing.T) {
	assert.Equal(t, "otel:4318", endpoint("otel"))
	assert.Equal(t, "otel:14318", endpoint("otel:14318"))
}
