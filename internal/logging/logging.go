// Copyright 2026 The Bda Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging builds the zap.Logger every other package in the
// catalog is handed at construction time, rather than reaching for a
// package-level global.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Style selects the logger's output encoding.
type Style string

const (
	// StyleTerminal is a human-readable, colorized console encoding,
	// suited to interactive use (cmd/bdad and cmd/bdacli running in a
	// terminal).
	StyleTerminal Style = "terminal"
	// StyleJSON is a structured, machine-parseable encoding, suited to
	// running bdad under a log collector.
	StyleJSON Style = "json"
	// StyleNoop discards everything logged; used in tests.
	StyleNoop Style = "noop"
)

// Config configures NewLogger. The zero value is StyleTerminal at Info
// level.
type Config struct {
	Style Style
	Debug bool
}

// Default returns a Config for interactive terminal use at Info level.
func Default() *Config { return &Config{Style: StyleTerminal} }

// NewLogger builds a *zap.Logger for the given Config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg == nil {
		cfg = Default()
	}
	if cfg.Style == StyleNoop {
		return zap.NewNop(), nil
	}

	level := zapcore.InfoLevel
	if cfg.Debug {
		level = zapcore.DebugLevel
	}

	var encoderCfg zapcore.EncoderConfig
	var encoder zapcore.Encoder
	switch cfg.Style {
	case StyleJSON:
		encoderCfg = zap.NewProductionEncoderConfig()
		encoderCfg.TimeKey = "ts"
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	default:
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stdout)), level)
	return zap.New(core, zap.AddCaller()), nil
}
