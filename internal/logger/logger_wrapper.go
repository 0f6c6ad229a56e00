package logger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/leandrodaf/midicodec/sdk/contracts"
)

// ZapLogger implements contracts.Logger on top of go.uber.org/zap.
type ZapLogger struct {
	logger *zap.Logger
	atom   zap.AtomicLevel
}

// NewZapLogger builds a production zap logger writing to stderr, with
// its level controlled by an AtomicLevel so SetLevel can adjust it at
// runtime without rebuilding the core.
func NewZapLogger() contracts.Logger {
	atom := zap.NewAtomicLevelAt(zapcore.InfoLevel)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(os.Stderr),
		atom,
	)

	return &ZapLogger{
		logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)),
		atom:   atom,
	}
}

func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.logger.Info(msg, toZapFields(fields)...)
}

func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.logger.Error(msg, toZapFields(fields)...)
}

func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.logger.Debug(msg, toZapFields(fields)...)
}

func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.logger.Warn(msg, toZapFields(fields)...)
}

func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.logger.Fatal(msg, toZapFields(fields)...)
}

func (z *ZapLogger) Field() contracts.Field {
	return &zapField{}
}

func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.atom.SetLevel(toZapLevel(level))
}

// SetDestination is a no-op on ZapLogger: the core is wired to stderr at
// construction time. Re-pointing output would require rebuilding the
// core, which this codec has never needed in practice.
func (z *ZapLogger) SetDestination(dest contracts.LogDestination, filePath ...string) {
	z.logger.Debug("SetDestination is not supported by ZapLogger",
		toZapFields([]contracts.Field{z.Field().String("destination", string(dest))})...)
}

func toZapLevel(level contracts.LogLevel) zapcore.Level {
	switch level {
	case contracts.DebugLevel:
		return zapcore.DebugLevel
	case contracts.WarnLevel:
		return zapcore.WarnLevel
	case contracts.ErrorLevel:
		return zapcore.ErrorLevel
	case contracts.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapFields(fields []contracts.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		if zf, ok := f.(*zapField); ok && zf.key != "" {
			out = append(out, zap.Any(zf.key, zf.value))
		}
	}
	return out
}

// zapField implements contracts.Field as an accumulator: each typed
// setter returns a freshly populated Field rather than mutating
// receiver state, matching the immutable-builder shape the interface's
// callers expect (one Field() per key/value pair).
type zapField struct {
	key   string
	value interface{}
}

func (f *zapField) Bool(key string, val bool) contracts.Field       { return &zapField{key, val} }
func (f *zapField) Int(key string, val int) contracts.Field         { return &zapField{key, val} }
func (f *zapField) Float64(key string, val float64) contracts.Field { return &zapField{key, val} }
func (f *zapField) String(key string, val string) contracts.Field   { return &zapField{key, val} }
func (f *zapField) Time(key string, val time.Time) contracts.Field  { return &zapField{key, val} }
func (f *zapField) Int64(key string, val int64) contracts.Field   { return &zapField{key, val} }
func (f *zapField) Error(key string, val error) contracts.Field   { return &zapField{key, val} }
func (f *zapField) Uint64(key string, val uint64) contracts.Field { return &zapField{key, val} }
func (f *zapField) Uint8(key string, val uint8) contracts.Field   { return &zapField{key, val} }
