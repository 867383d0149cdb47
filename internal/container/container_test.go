package container

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/butterfly-ledger/internal/config"
	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Data.Directory = filepath.Join(t.TempDir(), "data")
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      func(t *testing.T) *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      func(*testing.T) *config.Config { return nil },
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "defaults",
			config: testConfig,
		},
		{
			name: "json output with amqp backend",
			config: func(t *testing.T) *config.Config {
				cfg := testConfig(t)
				cfg.Output.Format = "json"
				cfg.Notify.Backend = config.NotifyBackendAMQP
				return cfg
			},
		},
		{
			name: "invalid output format",
			config: func(t *testing.T) *config.Config {
				cfg := testConfig(t)
				cfg.Output.Format = "xml"
				return cfg
			},
			expectError: true,
			errorMsg:    "invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainerWithOptions(tt.config(t), Options{Logger: logging.NewMockLogger()})
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			defer func() { assert.NoError(t, c.Close()) }()

			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetConfig())
			assert.NotNil(t, c.GetCategorizer())
			assert.NotNil(t, c.GetStore())
			assert.NotNil(t, c.GetLedgerStore())
			assert.NotNil(t, c.GetNotifier())
			assert.NotNil(t, c.GetRenderer())
			assert.NotNil(t, c.GetService())
			assert.FileExists(t, filepath.Join(c.GetDataDir(), "ledger.db"))
		})
	}
}

func TestNotifierBackend(t *testing.T) {
	cfg := testConfig(t)
	c, err := NewContainerWithOptions(cfg, Options{Logger: logging.NewMockLogger()})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	assert.IsType(t, &notify.LogNotifier{}, c.GetNotifier())

	cfg = testConfig(t)
	cfg.Notify.Backend = config.NotifyBackendAMQP
	c2, err := NewContainerWithOptions(cfg, Options{Logger: logging.NewMockLogger()})
	require.NoError(t, err)
	defer func() { _ = c2.Close() }()

	lazy, ok := c2.GetNotifier().(*notify.Lazy)
	require.True(t, ok)
	assert.False(t, lazy.Opened())
}

func TestContainerWiresService(t *testing.T) {
	var out bytes.Buffer
	c, err := NewContainerWithOptions(testConfig(t), Options{Logger: logging.NewMockLogger(), Output: &out})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	today := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	budget, err := c.GetService().Budget(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, "2000", budget.BaseAmount.String())

	require.NoError(t, c.GetRenderer().Budget(budget))
	assert.Contains(t, out.String(), "$2000.00")
}
