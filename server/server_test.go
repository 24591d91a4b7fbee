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
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/paysimlabs/hsmsim/command"
	"github.com/paysimlabs/hsmsim/hsmcrypto"
	"github.com/paysimlabs/hsmsim/keystore"
	"github.com/paysimlabs/hsmsim/protocol"
)

func startTestServer(t *testing.T, config *Config) (*HSMServer, net.Addr) {
	t.Helper()
	lmk, err := keystore.NewLMKFromHex(keystore.DefaultLMKHex)
	if err != nil {
		t.Fatal(err)
	}
	processor := command.NewProcessor(lmk, command.Policy{})
	server, err := NewServer(config, processor)
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		if err := server.Start(context.Background()); err != nil {
			t.Errorf("server stopped with error: %v", err)
		}
	}()
	var addr net.Addr
	for i := 0; i < 100; i++ {
		if addr = server.ListenerAddr(); addr != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if addr == nil {
		t.Fatal("server did not bind")
	}
	t.Cleanup(server.Close)
	return server, addr
}

func exchange(t *testing.T, conn net.Conn, header []byte, body []byte) (string, []byte) {
	t.Helper()
	frame, err := protocol.BuildFrame(header, body)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := conn.Write(frame); err != nil {
		t.Fatal(err)
	}
	buffer := make([]byte, protocol.MaxFrameTotalSize)
	n, err := conn.Read(buffer)
	if err != nil {
		t.Fatal(err)
	}
	code, payload, err := protocol.ParseFrame(buffer[:n], header)
	if err != nil {
		t.Fatal(err)
	}
	return code, payload
}

func TestServerServesDiagnostics(t *testing.T) {
	header := []byte("SSSS")
	_, addr := startTestServer(t, &Config{ConnectionString: "tcp://127.0.0.1:0", Header: header})

	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	code, payload := exchange(t, conn, header, []byte("NC"))
	if code != "ND" {
		t.Fatalf("expected ND, got %q", code)
	}
	if !bytes.HasPrefix(payload, []byte("00")) {
		t.Fatalf("expected error code 00, got %q", payload[:2])
	}

	lmk, err := keystore.NewLMKFromHex(keystore.DefaultLMKHex)
	if err != nil {
		t.Fatal(err)
	}
	checkValue, err := lmk.CheckValue(hsmcrypto.KCVLengthFull)
	if err != nil {
		t.Fatal(err)
	}
	expected := append(append([]byte("00"), checkValue...), []byte(command.FirmwareVersion)...)
	if !bytes.Equal(payload, expected) {
		t.Fatalf("payload % X, expected % X", payload, expected)
	}
}

func TestServerAnswersSeveralRequestsPerConnection(t *testing.T) {
	_, addr := startTestServer(t, &Config{ConnectionString: "tcp://127.0.0.1:0"})

	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	for i := 0; i < 3; i++ {
		code, payload := exchange(t, conn, nil, []byte("NC"))
		if code != "ND" || !bytes.HasPrefix(payload, []byte("00")) {
			t.Fatalf("request %d: code %q payload %q", i, code, payload)
		}
	}
}

func TestServerAnswersUnknownCommand(t *testing.T) {
	_, addr := startTestServer(t, &Config{ConnectionString: "tcp://127.0.0.1:0"})

	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	code, payload := exchange(t, conn, nil, []byte("ZX"))
	if code != "ZZ" {
		t.Fatalf("expected ZZ, got %q", code)
	}
	if !bytes.Equal(payload, []byte("00")) {
		t.Fatalf("expected bare error code 00, got %q", payload)
	}
}

func TestServerClosesConnectionOnMalformedFrame(t *testing.T) {
	_, addr := startTestServer(t, &Config{ConnectionString: "tcp://127.0.0.1:0"})

	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	// declared length does not match the body
	if _, err := conn.Write([]byte{0x00, 0x10, 'N', 'C'}); err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, err := conn.Read(make([]byte, 1)); err != io.EOF {
		t.Fatalf("expected EOF after malformed frame, got %v", err)
	}
}

func TestServerClosesConnectionOnBadHeader(t *testing.T) {
	_, addr := startTestServer(t, &Config{ConnectionString: "tcp://127.0.0.1:0", Header: []byte("SSSS")})

	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	frame, err := protocol.BuildFrame([]byte("XXXX"), []byte("NC"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := conn.Write(frame); err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, err := conn.Read(make([]byte, 1)); err != io.EOF {
		t.Fatalf("expected EOF after header mismatch, got %v", err)
	}
}
