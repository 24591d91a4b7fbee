/*
Copyright 2020, PaySim Labs

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package logging contains the log formatters (plaintext, JSON and CEF) used
// by the HSM simulator. Logging mode and verbosity are configured through
// the service yaml file or CLI parameters.
package logging

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Log modes
const (
	LogDebug = iota
	LogVerbose
	LogDiscard
)

// Supported formatter names.
const (
	PlaintextFormatString = "plaintext"
	JSONFormatString      = "json"
	CEFFormatString       = "cef"
)

type loggerKey struct{}

// IsDebugLevel returns true if logger is configured to log debug messages.
func IsDebugLevel(logger *log.Entry) bool {
	return logger.Logger.IsLevelEnabled(log.DebugLevel)
}

// SetLogLevel sets the global logging level.
func SetLogLevel(level int) {
	switch level {
	case LogDebug:
		log.SetLevel(log.DebugLevel)
	case LogVerbose:
		log.SetLevel(log.InfoLevel)
	case LogDiscard:
		log.SetLevel(log.WarnLevel)
	default:
		panic(fmt.Sprintf("Incorrect log level - %v", level))
	}
}

// GetLogLevel returns the current log mode.
func GetLogLevel() int {
	if log.GetLevel() == log.DebugLevel {
		return LogDebug
	}
	if log.GetLevel() == log.InfoLevel {
		return LogVerbose
	}
	return LogDiscard
}

// CustomizeLogging installs the formatter chosen by format and labels every
// entry with the service name.
func CustomizeLogging(format, serviceName string) {
	log.SetFormatter(CreateFormatter(format, serviceName))
	log.Debugf("Changed logging format to %s", format)
}

// CreateFormatter creates a formatter object by name.
func CreateFormatter(format, serviceName string) log.Formatter {
	switch strings.ToLower(format) {
	case JSONFormatString:
		return JSONFormatter(serviceName)
	case CEFFormatString:
		return CEFFormatter(serviceName)
	default:
		return TextFormatter()
	}
}

// SetLoggerToContext sets logger to corresponded context
func SetLoggerToContext(ctx context.Context, logger *log.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLoggerFromContext gets logger from context, returns a default logger if
// the context carries none.
func GetLoggerFromContext(ctx context.Context) *log.Entry {
	if entry, ok := GetLoggerFromContextOk(ctx); ok {
		return entry
	}
	return log.NewEntry(log.StandardLogger())
}

// GetLoggerFromContextOk gets logger from context, returns logger and success code.
func GetLoggerFromContextOk(ctx context.Context) (*log.Entry, bool) {
	entry, ok := ctx.Value(loggerKey{}).(*log.Entry)
	return entry, ok
}
