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

package server

import (
	"context"
	"io"
	"net"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opencensus.io/trace"

	"github.com/paysimlabs/hsmsim/command"
	"github.com/paysimlabs/hsmsim/logging"
	"github.com/paysimlabs/hsmsim/protocol"
	"github.com/paysimlabs/hsmsim/utils"
)

func recoverConnection(logger *log.Entry, connection net.Conn) {
	if recMsg := recover(); recMsg != nil {
		logger.WithField("error", recMsg).Errorln("Panic in connection processing, close connection")
		if err := connection.Close(); err != nil {
			logger.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorCantCloseConnection).WithError(err).
				Errorln("Error on Close() in panic handler")
		}
	}
}

// handleConnection runs the session loop: one frame in, one frame out,
// strictly paired. Any framing or grammar failure closes the connection
// without a reply; resynchronising a peer in-band is not possible once
// framing is lost.
func (server *HSMServer) handleConnection(ctx context.Context, connection net.Conn) {
	timer := prometheus.NewTimer(prometheus.ObserverFunc(connectionProcessingTimeHistogram.Observe))
	defer timer.ObserveDuration()

	logger := logging.NewLoggerWithTrace(ctx).WithField("peer", connection.RemoteAddr().String())
	defer recoverConnection(logger, connection)
	defer func() {
		if err := connection.Close(); err != nil {
			logger.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorCantCloseConnection).WithError(err).
				Debugln("Error on connection close")
		}
	}()
	logger.Debugln("Accepted connection")

	buffer := make([]byte, protocol.MaxFrameTotalSize)
	for {
		n, err := connection.Read(buffer)
		if err != nil {
			if err != io.EOF {
				logger.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorSessionRead).WithError(err).
					Debugln("Stop reading requests")
			}
			return
		}
		if !server.serveFrame(ctx, connection, logger, buffer[:n]) {
			return
		}
	}
}

// serveFrame parses one raw frame, dispatches it and writes the reply.
// It returns false when the connection must be dropped.
func (server *HSMServer) serveFrame(ctx context.Context, connection net.Conn, logger *log.Entry, raw []byte) bool {
	handleCtx, span := trace.StartSpan(ctx, "serveFrame")
	defer span.End()

	if logging.IsDebugLevel(logger) {
		logger.Debugf("<< %s", utils.HexNibbles(raw))
	}

	code, payload, err := protocol.ParseFrame(raw, server.config.Header)
	if err != nil {
		logger.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorSessionFrameParse).WithError(err).
			Warningln("Malformed frame, close connection")
		span.SetStatus(trace.Status{Code: trace.StatusCodeInvalidArgument, Message: err.Error()})
		return false
	}

	request, err := command.ParseRequest(code, payload)
	if err != nil {
		logger.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorSessionCommand).WithError(err).
			WithField("command_code", code).Warningln("Malformed command, close connection")
		span.SetStatus(trace.Status{Code: trace.StatusCodeInvalidArgument, Message: err.Error()})
		return false
	}
	commandLogger := logger.WithField("command_code", request.Code)
	if logging.IsDebugLevel(commandLogger) {
		commandLogger.WithField("description", request.Description).Debugf("Request fields: %s", request.Fields)
	}

	_, handleSpan := trace.StartSpan(handleCtx, "handleCommand")
	response := server.processor.Handle(request)
	handleSpan.End()
	commandCounter.With(prometheus.Labels{
		commandCodeLabel: request.Code,
		errorCodeLabel:   string(response.Error),
	}).Inc()

	frame, err := protocol.BuildFrame(server.config.Header, response.Encode())
	if err != nil {
		commandLogger.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorSessionBuildFrame).WithError(err).
			Errorln("Can't build response frame, close connection")
		return false
	}
	if logging.IsDebugLevel(commandLogger) {
		commandLogger.Debugf(">> %s", utils.HexNibbles(frame))
	}
	if _, err := connection.Write(frame); err != nil {
		commandLogger.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorSessionWrite).WithError(err).
			Debugln("Can't write response, close connection")
		return false
	}
	return true
}
