package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/menu-sites/internal/config"
)

func TestInit_NoExporter(t *testing.T) {
	shutdown, err := Init(context.Background(), config.Tracing{})
	require.NoError(t, err)
	shutdown(context.Background())
}

func TestInit_Stdout(t *testing.T) {
	shutdown, err := Init(context.Background(), config.Tracing{Exporter: ExporterStdout})
	require.NoError(t, err)
	shutdown(context.Background())
}

func TestInit_UnknownExporter(t *testing.T) {
	_, err := Init(context.Background(), config.Tracing{Exporter: "zipkin"})
	assert.Error(t, err)
}
