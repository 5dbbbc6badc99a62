//go:build unit

package telemetry_test

import (
	"context"
	"testing"

	"request-hub/internal/pkg/config"
	"request-hub/internal/pkg/telemetry"

	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TelemetryConfig
	}{
		{
			name: "disabled",
			cfg:  config.TelemetryConfig{Enabled: false, Endpoint: "http://localhost:4318", ServiceName: "request-hub"},
		},
		{
			name: "enabled without endpoint",
			cfg:  config.TelemetryConfig{Enabled: true, ServiceName: "request-hub"},
		},
		{
			// non-routable address so nothing is exported
			name: "enabled with endpoint",
			cfg:  config.TelemetryConfig{Enabled: true, Endpoint: "http://192.0.2.1:4318", ServiceName: "request-hub"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := telemetry.Setup(context.Background(), tt.cfg)
			require.NoError(t, err)
			require.NoError(t, shutdown(context.Background()))
		})
	}
}
