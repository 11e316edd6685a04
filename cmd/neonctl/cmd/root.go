package cmd

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/deepmap/oapi-codegen/pkg/securityprovider"
	"github.com/google/uuid"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zthreefires/neonctl/pkg/api"
	"github.com/zthreefires/neonctl/pkg/config"
	"github.com/zthreefires/neonctl/pkg/logging"
	"github.com/zthreefires/neonctl/pkg/version"
)

const (
	DefaultMaxIdleConnsPerHost = 100

	defaultConfigName = ".neonctl"
)

var (
	cfgFile string
	cfg     *config.Config
	// cfgErr is any error found reading the config file, reported once the
	// command runs
	cfgErr error
)

// rootCmd represents the base command when called without any sub-commands
var rootCmd = &cobra.Command{
	Use:   "neonctl",
	Short: "A cli tool to manage Neon projects and branches",
	Long: `neonctl manages the branches of Neon serverless Postgres projects.

Branches can be addressed by id, by name, or at a point in time of their
history: <branch>@<lsn>, <branch>@<timestamp>, ^self and ^parent.`,
	Version: version.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorRequested {
			DisableColors()
		}
		if cfgErr != nil {
			DieFmt("error reading configuration file: %v", cfgErr)
		}

		var err error
		cfg, err = config.Load(viper.GetViper())
		if err != nil {
			DieErr(err)
		}
		if err := cfg.SetupLogging(); err != nil {
			DieFmt("error setting up logging: %v", err)
		}

		ctx := logging.AddFields(cmd.Context(), logging.Fields{
			logging.CommandFieldKey: cmd.CommandPath(),
		})
		cmd.SetContext(ctx)
		if file := viper.ConfigFileUsed(); file != "" {
			logging.FromContext(ctx).
				WithField("file", file).
				Debug("loaded configuration from file")
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.CloseWriters()
	},
}

func getClient() *api.Client {
	// override MaxIdleConnsPerHost to keep connections reused across retries
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost

	var httpClient *http.Client
	if cfg.Network.Retries.Enabled {
		httpClient = NewRetryClient(cfg.Network.Retries, transport, neonctlRetryPolicy)
	} else {
		httpClient = &http.Client{Transport: transport}
	}

	apiKey := cfg.APIKey.SecureValue()
	if apiKey == "" {
		Die("no API key configured, use --api-key or set NEON_API_KEY", 1)
	}
	bearerProvider, err := securityprovider.NewSecurityProviderBearerToken(apiKey)
	if err != nil {
		DieErr(err)
	}

	client, err := api.NewClient(
		cfg.APIHost,
		api.WithHTTPClient(httpClient),
		api.WithRequestEditorFn(bearerProvider.Intercept),
		api.WithRequestEditorFn(func(ctx context.Context, req *http.Request) error {
			req.Header.Set("User-Agent", version.UserAgent())
			req.Header.Set(api.RequestIDHeader, uuid.NewString())
			return nil
		}),
	)
	if err != nil {
		DieFmt("could not initialize API client: %s", err)
	}
	return client
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		DieErr(err)
	}
}

// bindFlags binds each config key to the flag of the same setting.
func bindFlags(flags *pflag.FlagSet, keyToFlag map[string]string) {
	for key, name := range keyToFlag {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

//nolint:gochecknoinits
func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.neonctl.yaml)")
	flags.BoolVar(&noColorRequested, "no-color", false, "don't use fancy output colors (default when not attached to an interactive terminal)")
	flags.String("api-host", config.DefaultAPIHost, "API base URL")
	flags.String("api-key", "", "API key (default is $NEON_API_KEY)")
	flags.StringP("output", "o", config.DefaultOutput, "output format: table, json or yaml")
	flags.String("context-file", config.DefaultContextFile, "file holding the default project of commands")
	flags.String("log-level", config.DefaultLogLevel, "set logging level")
	flags.String("log-format", "", "set logging output format")
	flags.StringSlice("log-output", []string{}, "set logging output(s)")

	bindFlags(flags, map[string]string{
		config.APIHostKey:     "api-host",
		config.APIKeyKey:      "api-key",
		config.OutputKey:      "output",
		config.ContextFileKey: "context-file",
		config.LogLevelKey:    "log-level",
		config.LogFormatKey:   "log-format",
		config.LogOutputKey:   "log-output",
	})
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.Setup(viper.GetViper())

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			cfgErr = err
			return
		}

		// Search config in home directory with name ".neonctl" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(defaultConfigName)
	}

	cfgErr = viper.ReadInConfig()
	if errors.As(cfgErr, &viper.ConfigFileNotFoundError{}) && cfgFile == "" {
		// no config file, run using the default values and environment
		cfgErr = nil
	}
}

// flagValue returns the flag as a trimmed string.
func flagValue(cmd *cobra.Command, name string) string {
	return strings.TrimSpace(Must(cmd.Flags().GetString(name)))
}
