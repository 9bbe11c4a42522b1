package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogFile = "wasmlib.log"

// Rotation configures the log file location and its rotation policy. Zero
// fields take the defaults.
type Rotation struct {
	Dir        string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

func (r Rotation) withDefaults() Rotation {
	cpy := r
	if cpy.Dir == "" {
		cpy.Dir = "./logs"
	}
	if cpy.MaxSize == 0 {
		cpy.MaxSize = 50 // megabytes per file before rotation
	}
	if cpy.MaxBackups == 0 {
		cpy.MaxBackups = 5
	}
	if cpy.MaxAge == 0 {
		cpy.MaxAge = 14 // days
	}
	return cpy
}

func NewRotatingFileLogger(
	debug bool,
	filename string,
	rotation Rotation,
	fields ...zap.Field,
) (
	*zap.Logger,
	io.Closer,
	error,
) {
	rotation = rotation.withDefaults()
	if err := os.MkdirAll(rotation.Dir, 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "new rotating file logger")
	}

	if filename == "" {
		filename = defaultLogFile
	}

	rot := &lumberjack.Logger{
		Filename:   filepath.Join(rotation.Dir, filename),
		MaxSize:    rotation.MaxSize,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAge,
		Compress:   rotation.Compress,
	}

	encCfg := zap.NewProductionEncoderConfig()
	level := zap.InfoLevel
	if debug {
		encCfg = zap.NewDevelopmentEncoderConfig()
		level = zap.DebugLevel
	}
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	enc := zapcore.NewConsoleEncoder(encCfg)

	core := zapcore.NewCore(enc, zapcore.AddSync(rot), level)
	logger := zap.New(core, zap.AddCaller(), zap.Fields(fields...))

	return logger, rot, nil
}
