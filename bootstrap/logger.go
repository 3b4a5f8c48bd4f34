package bootstrap

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logTimeLayout is the timestamp format of the basic logging setup.
const logTimeLayout = "2006-01-02 15:04:05"

// ConfigureLog builds the process logger. When the configuration carries a
// structured log_config mapping it is applied verbatim as a zap
// configuration; otherwise a fixed basic console setup is used with the
// given level and the fixed timestamp layout. Called once at startup.
func ConfigureLog(logConfig map[string]any, level string) (*zap.SugaredLogger, error) {
	if len(logConfig) > 0 {
		raw, err := json.Marshal(logConfig)
		if err != nil {
			return nil, fmt.Errorf("encoding log_config: %w", err)
		}
		var zcfg zap.Config
		if err := json.Unmarshal(raw, &zcfg); err != nil {
			return nil, fmt.Errorf("invalid log_config: %w", err)
		}
		logger, err := zcfg.Build()
		if err != nil {
			return nil, fmt.Errorf("building logger from log_config: %w", err)
		}
		return logger.Sugar(), nil
	}

	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(logTimeLayout)
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.ConsoleSeparator = " "

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		lvl,
	)
	return zap.New(core).Sugar(), nil
}

func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
