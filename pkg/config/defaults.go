package config

import (
	"time"

	"github.com/spf13/viper"
	"github.com/zthreefires/neonctl/pkg/api"
)

const (
	EnvPrefix = "NEONCTL"

	APIHostKey     = "api_host"
	DefaultAPIHost = api.DefaultServerURL

	APIKeyKey = "api_key"

	OutputKey     = "output"
	DefaultOutput = OutputTable

	ContextFileKey     = "context_file"
	DefaultContextFile = ".neon"

	LogLevelKey     = "log.level"
	DefaultLogLevel = "none"

	LogFormatKey         = "log.format"
	LogOutputKey         = "log.output"
	LogFileMaxSizeMBKey  = "log.file_max_size_mb"
	DefaultLogFileSizeMB = 100
	LogFilesKeepKey      = "log.files_keep"
	DefaultLogFilesKeep  = 3

	RetriesEnabledKey     = "network.retries.enabled"
	DefaultRetriesEnabled = true

	RetriesMaxAttemptsKey     = "network.retries.max_attempts"
	DefaultRetriesMaxAttempts = 4

	RetriesMinWaitIntervalKey     = "network.retries.min_wait_interval"
	DefaultRetriesMinWaitInterval = 200 * time.Millisecond

	RetriesMaxWaitIntervalKey     = "network.retries.max_wait_interval"
	DefaultRetriesMaxWaitInterval = 30 * time.Second
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(APIHostKey, DefaultAPIHost)
	v.SetDefault(OutputKey, DefaultOutput)
	v.SetDefault(ContextFileKey, DefaultContextFile)

	v.SetDefault(LogLevelKey, DefaultLogLevel)
	v.SetDefault(LogFileMaxSizeMBKey, DefaultLogFileSizeMB)
	v.SetDefault(LogFilesKeepKey, DefaultLogFilesKeep)

	v.SetDefault(RetriesEnabledKey, DefaultRetriesEnabled)
	v.SetDefault(RetriesMaxAttemptsKey, DefaultRetriesMaxAttempts)
	v.SetDefault(RetriesMinWaitIntervalKey, DefaultRetriesMinWaitInterval)
	v.SetDefault(RetriesMaxWaitIntervalKey, DefaultRetriesMaxWaitInterval)
}
