package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LoggerInitializationFailedMessageFormat is printed when the logger cannot be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %v\n"
	// ApplicationExecutionFailedMessage is logged when a command returns an error.
	ApplicationExecutionFailedMessage = "application execution failed"
	standardErrorOutputPath           = "stderr"
)

// NewApplicationLogger constructs a zap logger configured for human-readable console output.
// An empty logFilePath writes to standard error.
func NewApplicationLogger(logFilePath string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""
	if logFilePath == "" {
		config.EncoderConfig.TimeKey = ""
		config.EncoderConfig.LevelKey = ""
		config.OutputPaths = []string{standardErrorOutputPath}
	} else {
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.OutputPaths = []string{logFilePath}
	}
	config.ErrorOutputPaths = []string{standardErrorOutputPath}
	return config.Build()
}
