package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DatabaseMemory, cfg.Database.Type)
	assert.Equal(t, 3, cfg.Checkout.OrderNumberAttempts)
	assert.False(t, cfg.Checkout.EnforceStock)
	assert.Equal(t, "cash_on_delivery", cfg.Checkout.DefaultPaymentMethod)
	assert.Equal(t, NotificationModeAsync, cfg.Notification.Mode)
	assert.Equal(t, 30*time.Second, cfg.Notification.Timeout)
	assert.Equal(t, "storefront-development-secret", cfg.Auth.JWTSecret)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: production
database:
  type: postgres
  port: "5432"
checkout:
  enforce_stock: true
`), 0o600))
	t.Setenv("STOREFRONT_AUTH_JWT_SECRET", "from-env")
	t.Setenv("STOREFRONT_CHECKOUT_ORDER_NUMBER_ATTEMPTS", "5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, DatabasePostgres, cfg.Database.Type)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.True(t, cfg.Checkout.EnforceStock)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 5, cfg.Checkout.OrderNumberAttempts)
}

func TestWatchReportsLevelEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o600))

	levels := make(chan string, 16)
	require.NoError(t, Watch(path, func(cfg *Config) {
		select {
		case levels <- cfg.Log.Level:
		default:
		}
	}))

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\ndatabase:\n  log_level: info\n"), 0o600))

	// a rewrite may surface as several events; wait for the final content
	deadline := time.After(5 * time.Second)
	for {
		select {
		case level := <-levels:
			if level == "warn" {
				return
			}
		case <-deadline:
			t.Fatal("config change was not reported")
		}
	}
}

func TestWatchWithoutFile(t *testing.T) {
	err := Watch("", func(*Config) {})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"database", func(c *Config) { c.Database.Type = "sqlite" }, "unsupported database type"},
		{"outbox on memory", func(c *Config) { c.Notification.Mode = NotificationModeOutbox }, "requires a relational database"},
		{"mode", func(c *Config) { c.Notification.Mode = "sync" }, "unsupported notification mode"},
		{"mail host", func(c *Config) { c.Notification.Transport = TransportMail }, "mail.host"},
		{"kafka brokers", func(c *Config) { c.Notification.Transport = TransportKafka }, "kafka.brokers"},
		{"transport", func(c *Config) { c.Notification.Transport = "sms" }, "unsupported notification transport"},
		{"secret", func(c *Config) { c.App.Env = "production"; c.Auth.JWTSecret = "" }, "jwt_secret"},
		{"attempts", func(c *Config) { c.Checkout.OrderNumberAttempts = 0 }, "order_number_attempts"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}
}
