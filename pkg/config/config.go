package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

var (
	ErrBadConfiguration = errors.New("bad configuration")
	ErrBadAPIHost       = fmt.Errorf("%w: api_host must be an absolute http(s) URL", ErrBadConfiguration)
	ErrBadOutput        = fmt.Errorf("%w: output must be one of table, json, yaml", ErrBadConfiguration)
	ErrBadLogFormat     = fmt.Errorf("%w: log.format must be text or json", ErrBadConfiguration)
	ErrBadRetries       = fmt.Errorf("%w: network.retries", ErrBadConfiguration)
)

type RetriesCfg struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxAttempts     uint          `mapstructure:"max_attempts"`
	MinWaitInterval time.Duration `mapstructure:"min_wait_interval"`
	MaxWaitInterval time.Duration `mapstructure:"max_wait_interval"`
}

// Config is the neonctl configuration, read from the config file, the
// NEONCTL_* environment and the command line flags.
type Config struct {
	APIHost     string       `mapstructure:"api_host"`
	APIKey      SecureString `mapstructure:"api_key"`
	Output      string       `mapstructure:"output"`
	ContextFile string       `mapstructure:"context_file"`
	Log         struct {
		Level         string  `mapstructure:"level"`
		Format        string  `mapstructure:"format"`
		Output        Strings `mapstructure:"output"`
		FileMaxSizeMB int     `mapstructure:"file_max_size_mb"`
		FilesKeep     int     `mapstructure:"files_keep"`
	} `mapstructure:"log"`
	Network struct {
		Retries RetriesCfg `mapstructure:"retries"`
	} `mapstructure:"network"`
}

// Setup prepares v to read neonctl configuration: environment variables
// prefixed NEONCTL_ with '_' for nesting, and default values.
func Setup(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// the platform's own variable name is accepted for the API key
	_ = v.BindEnv(APIKeyKey, EnvPrefix+"_API_KEY", "NEON_API_KEY")

	// Inform viper of all expected fields.  Otherwise, it fails to deserialize
	// from the environment.
	for _, key := range GetStructKeys(reflect.TypeOf(Config{}), "mapstructure", "squash") {
		v.SetDefault(key, nil)
	}
	setDefaults(v)
}

// Load decodes and validates the configuration found on v.
func Load(v *viper.Viper) (*Config, error) {
	c := &Config{}
	err := v.UnmarshalExact(c, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			DecodeStrings,
			mapstructure.StringToTimeDurationHookFunc())))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadConfiguration, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate returns all configuration problems found, joined in a multierror.
func (c *Config) Validate() error {
	var errs *multierror.Error

	if u, err := url.Parse(c.APIHost); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = multierror.Append(errs, fmt.Errorf("%w: %q", ErrBadAPIHost, c.APIHost))
	}
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		errs = multierror.Append(errs, fmt.Errorf("%w: %q", ErrBadOutput, c.Output))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = multierror.Append(errs, fmt.Errorf("%w: %q", ErrBadLogFormat, c.Log.Format))
	}

	retries := c.Network.Retries
	if retries.Enabled {
		if retries.MaxAttempts == 0 {
			errs = multierror.Append(errs, fmt.Errorf("%w: max_attempts must be positive", ErrBadRetries))
		}
		if retries.MinWaitInterval > retries.MaxWaitInterval {
			errs = multierror.Append(errs, fmt.Errorf("%w: min_wait_interval %s is above max_wait_interval %s",
				ErrBadRetries, retries.MinWaitInterval, retries.MaxWaitInterval))
		}
	}
	return errs.ErrorOrNil()
}
