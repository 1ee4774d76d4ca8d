// Package zlog adapts zerolog to the Nakama runtime.Logger interface so RPC
// handlers can run outside the Nakama process.
package zlog

import (
	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/rs/zerolog"
)

type Logger struct {
	zl     zerolog.Logger
	fields map[string]interface{}
}

func New(zl zerolog.Logger) *Logger {
	return &Logger{zl: zl, fields: map[string]interface{}{}}
}

func (l *Logger) Debug(format string, v ...interface{}) { l.zl.Debug().Msgf(format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.zl.Info().Msgf(format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.zl.Warn().Msgf(format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.zl.Error().Msgf(format, v...) }

func (l *Logger) WithField(key string, v interface{}) runtime.Logger {
	return l.WithFields(map[string]interface{}{key: v})
}

func (l *Logger) WithFields(fields map[string]interface{}) runtime.Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{zl: l.zl.With().Fields(fields).Logger(), fields: merged}
}

// Fields returns a copy of the fields attached with WithField(s).
func (l *Logger) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(l.fields))
	for k, v := range l.fields {
		out[k] = v
	}
	return out
}

var _ runtime.Logger = (*Logger)(nil)
