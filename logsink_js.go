package main

import (
	"html"
	"os"
	"strings"
	"syscall/js"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// divWriter appends log lines to an HTML element.
type divWriter struct {
	div js.Value
}

func (w divWriter) Write(b []byte) (int, error) {
	line := html.EscapeString(strings.TrimRight(string(b), "\n"))
	w.div.Set("innerHTML", w.div.Get("innerHTML").String()+line+"<br/>")
	return len(b), nil
}

func (w divWriter) Sync() error {
	return nil
}

// newLogger logs to the browser console and, if div is not null, to the page.
func newLogger(div js.Value, debug bool) *zap.Logger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level),
	}
	if !div.IsNull() && !div.IsUndefined() {
		encCfg.CallerKey = ""
		cores = append(cores,
			zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), divWriter{div: div}, zap.WarnLevel),
		)
	}
	return zap.New(zapcore.NewTee(cores...))
}
