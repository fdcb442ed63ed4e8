package log

import (
	"io"
	"os"

	"employeehub/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger 依 LOG__LEVEL / LOG__FORMAT 建立 logger，warn 以上寫 stderr
func NewLogger(conf *config.Configuration) (*zap.Logger, error) {
	return newLogger(conf, os.Stdout, os.Stderr)
}

func newLogger(conf *config.Configuration, stdout, stderr io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(conf.Log.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	threshold := zap.NewAtomicLevelAt(lvl)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.MessageKey = "message"
	encCfg.TimeKey = "ts"
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if conf.Log.Format == config.LogFormatConsole {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	// stdout / stderr 分流，同時受 threshold 控制
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(stdout), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return threshold.Enabled(l) && l < zapcore.WarnLevel
		})),
		zapcore.NewCore(encoder, zapcore.AddSync(stderr), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return threshold.Enabled(l) && l >= zapcore.WarnLevel
		})),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)).With(
		zap.String("service", conf.App.Name),
		zap.String("version", conf.App.Version),
	)
	logger.Debug("logger ready", zap.Stringer("level", lvl), zap.String("format", conf.Log.Format))
	return logger, nil
}
