package config

import (
	"github.com/zthreefires/neonctl/pkg/logging"
)

const (
	DefaultLoggingFormat = "text"
	DefaultLoggingOutput = "="
)

// SetupLogging applies the log section of c to the default logger. Log
// lines go to stderr unless configured otherwise, stdout carries command
// output.
func (c *Config) SetupLogging() error {
	format := c.Log.Format
	if format == "" {
		format = DefaultLoggingFormat
	}
	logging.SetOutputFormat(format)

	outputs := []string(c.Log.Output)
	if len(outputs) == 0 {
		outputs = []string{DefaultLoggingOutput}
	}
	if err := logging.SetOutputs(outputs, c.Log.FileMaxSizeMB, c.Log.FilesKeep); err != nil {
		return err
	}

	// level last, "none" discards the output
	logging.SetLevel(c.Log.Level)
	return nil
}
