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

// Package network resolves connection strings of the form
// protocol://endpoint into listeners and connections.
package network

import (
	"fmt"
	"net"
	url_ "net/url"
	"time"

	"golang.org/x/net/netutil"
)

// DefaultNetworkTimeout is the read/write timeout of auxiliary HTTP
// endpoints.
const DefaultNetworkTimeout = time.Second * 10

// Dial connects to connectionString like protocol://path where protocol is
// any protocol supported via net.Dial (tcp|unix).
func Dial(connectionString string) (net.Conn, error) {
	url, err := url_.Parse(connectionString)
	if err != nil {
		return nil, err
	}
	if url.Scheme == "unix" {
		return net.Dial(url.Scheme, url.Path)
	}
	return net.Dial(url.Scheme, url.Host)
}

// Listen returns a listener for the connection string.
func Listen(connectionString string) (net.Listener, error) {
	url, err := url_.Parse(connectionString)
	if err != nil {
		return nil, err
	}
	if url.Scheme == "unix" {
		return net.Listen(url.Scheme, url.Path)
	}
	return net.Listen(url.Scheme, url.Host)
}

// ListenWithLimit returns a listener for the connection string that accepts
// at most maxConnections simultaneous connections. maxConnections <= 0
// means unlimited.
func ListenWithLimit(connectionString string, maxConnections int) (net.Listener, error) {
	listener, err := Listen(connectionString)
	if err != nil {
		return nil, err
	}
	if maxConnections > 0 {
		listener = netutil.LimitListener(listener, maxConnections)
	}
	return listener, nil
}

// BuildConnectionString renders <protocol>://<host>:<port>
func BuildConnectionString(protocol, host string, port int) string {
	return fmt.Sprintf("%s://%s:%v", protocol, host, port)
}
