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

// Package server accepts HSM simulator connections and runs the
// frame-in/frame-out session loop for each of them.
package server

import (
	"context"
	"net"
	url_ "net/url"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/paysimlabs/hsmsim/command"
	"github.com/paysimlabs/hsmsim/logging"
	"github.com/paysimlabs/hsmsim/network"
)

// Config is the immutable server configuration.
type Config struct {
	// ConnectionString is the listen endpoint, protocol://host:port.
	ConnectionString string
	// Header is the fixed frame header every request must carry and every
	// response is prefixed with. May be empty.
	Header []byte
	// MaxConnections limits simultaneous connections, 0 means unlimited.
	MaxConnections int
	// WithTrace turns on span collection around session processing.
	WithTrace bool
}

// HSMServer accepts connections and serves the command protocol on them.
type HSMServer struct {
	config    *Config
	processor *command.Processor
	listener  net.Listener

	lock                  sync.RWMutex
	backgroundWorkersSync sync.WaitGroup
}

// NewServer returns a server that answers requests using processor.
func NewServer(config *Config, processor *command.Processor) (*HSMServer, error) {
	return &HSMServer{config: config, processor: processor}, nil
}

// ListenerAddr returns the bound listener address, nil before Start.
func (server *HSMServer) ListenerAddr() net.Addr {
	server.lock.RLock()
	defer server.lock.RUnlock()
	if server.listener == nil {
		return nil
	}
	return server.listener.Addr()
}

// Start binds the listener and serves connections until the listener is
// closed. It blocks the calling goroutine.
func (server *HSMServer) Start(parentContext context.Context) error {
	listener, err := network.ListenWithLimit(server.config.ConnectionString, server.config.MaxConnections)
	if err != nil {
		log.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorCantStartListenConnections).WithError(err).
			Errorln("Can't start listen connections")
		return err
	}
	server.lock.Lock()
	server.listener = listener
	server.lock.Unlock()
	log.WithField("connection_string", server.config.ConnectionString).Infoln("Start listening connections")

	for {
		connection, err := listener.Accept()
		if err != nil {
			if opErr, ok := err.(*net.OpError); ok && !opErr.Temporary() {
				log.Debugln("Stop accepting new connections")
				return nil
			}
			log.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorCantAcceptNewConnections).WithError(err).
				Errorln("Can't accept new connection")
			return err
		}
		connectionCounter.Inc()
		server.backgroundWorkersSync.Add(1)
		go func() {
			defer server.backgroundWorkersSync.Done()
			server.handleConnection(logging.SetTraceStatus(parentContext, server.config.WithTrace), connection)
		}()
	}
}

// Close stops accepting connections and waits for active sessions to end.
func (server *HSMServer) Close() {
	log.Debugln("Closing server listener..")
	server.lock.RLock()
	listener := server.listener
	server.lock.RUnlock()
	if listener != nil {
		if err := listener.Close(); err != nil {
			log.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorCantStopListenConnections).WithError(err).
				Warningln("Error on closing listener")
		}
		if url, err := url_.Parse(server.config.ConnectionString); err == nil && url.Scheme == "unix" {
			if _, err := os.Stat(url.Path); err == nil {
				if err := os.Remove(url.Path); err != nil {
					log.WithError(err).Warningf("Can't remove unix socket %s", url.Path)
				}
			}
		}
	}
	server.backgroundWorkersSync.Wait()
	log.Debugln("Closed server listener")
}
