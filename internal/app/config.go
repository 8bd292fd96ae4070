package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete terminal configuration, loadable from
// environment variables (POS_ prefix), flags, or YAML config files.
type Config struct {
	BaseURL        string        `default:"http://localhost:8080" usage:"Backend API origin" flag:"base-url"`
	RequestTimeout time.Duration `default:"10s" usage:"Per-request timeout" flag:"request-timeout"`
	StatePath      string        `default:"" usage:"Session state file (defaults to the user config dir)" flag:"state-path"`
	Probe          ProbeConfig
}

// ProbeConfig controls the background backend reachability probe.
type ProbeConfig struct {
	Interval         time.Duration `default:"15s" usage:"Probe interval"`
	Timeout          time.Duration `default:"3s"  usage:"Single probe timeout"`
	FailureThreshold int           `default:"2"   usage:"Consecutive failures before offline" flag:"probe-failures"`
	SuccessThreshold int           `default:"1"   usage:"Consecutive successes before online" flag:"probe-successes"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-provided defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "POS",
		Files:     []string{"config.yaml", "/etc/pos-terminal/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()
	return &cfg, nil
}

// applyPlatformDefaults maps commonly provisioned environment variables
// that use standard names to the POS_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if v := os.Getenv("BACKEND_URL"); v != "" && c.BaseURL == "http://localhost:8080" {
		c.BaseURL = v
	}
}
