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

package logging

import (
	"context"
	"encoding/hex"
	"regexp"

	log "github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// reZero provides a simple way to detect an empty ID
var reZero = regexp.MustCompile(`^0+$`)

// LogSpanExporter is an opencensus exporter that prints all spans with the
// process logger.
type LogSpanExporter struct{}

// ExportSpan logs the trace span.
func (e *LogSpanExporter) ExportSpan(vd *trace.SpanData) {
	var (
		traceID      = hex.EncodeToString(vd.SpanContext.TraceID[:])
		spanID       = hex.EncodeToString(vd.SpanContext.SpanID[:])
		parentSpanID = hex.EncodeToString(vd.ParentSpanID[:])
	)
	logger := log.WithFields(log.Fields{
		"trace_id":  traceID,
		"span_id":   spanID,
		"span_name": vd.Name,
		"duration":  vd.EndTime.Sub(vd.StartTime).String(),
	})
	if vd.Status.Code != trace.StatusCodeOK {
		logger = logger.WithFields(log.Fields{"status_message": vd.Status.Message, "status_code": vd.Status.Code})
	}

	if !reZero.MatchString(parentSpanID) {
		logger = logger.WithField("parent_span_id", parentSpanID)
	}

	if len(vd.Attributes) > 0 {
		attributes := log.Fields{}
		for k, v := range vd.Attributes {
			attributes[k] = v
		}
		logger = logger.WithFields(attributes)
	}

	for _, item := range vd.Annotations {
		annotations := log.Fields{FieldKeyUnixTime: TimeToString(item.Time)}
		for k, v := range item.Attributes {
			annotations[k] = v
		}
		logger.WithFields(annotations).Infoln(item.Message)
	}
	logger.Infoln("span end")
}

// LoggerWithTrace returns logger with span_id/trace_id fields added from
// context when tracing is enabled.
func LoggerWithTrace(ctx context.Context, logger *log.Entry) *log.Entry {
	span := trace.FromContext(ctx)
	spanContext := span.SpanContext()
	if getTraceStatus(ctx) {
		return logger.WithFields(log.Fields{"span_id": spanContext.SpanID, "trace_id": spanContext.TraceID})
	}
	return logger
}

// NewLoggerWithTrace returns a logger with trace_id/span_id fields.
func NewLoggerWithTrace(ctx context.Context) *log.Entry {
	return LoggerWithTrace(ctx, log.NewEntry(log.StandardLogger()))
}

// traceStatusKey used as key for context value
type traceStatusKey struct{}

// SetTraceStatus to context
func SetTraceStatus(ctx context.Context, isOn bool) context.Context {
	return context.WithValue(ctx, traceStatusKey{}, isOn)
}

// getTraceStatus returns the status of tracing, false if not set.
func getTraceStatus(ctx context.Context) bool {
	if v, ok := ctx.Value(traceStatusKey{}).(bool); ok {
		return v
	}
	return false
}
