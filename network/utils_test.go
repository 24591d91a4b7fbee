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

package network

import (
	"fmt"
	"path/filepath"
	"testing"
)

func TestBuildConnectionString(t *testing.T) {
	if got := BuildConnectionString("tcp", "127.0.0.1", 1500); got != "tcp://127.0.0.1:1500" {
		t.Fatalf("BuildConnectionString = %q", got)
	}
}

func TestListenAndDialTCP(t *testing.T) {
	listener, err := Listen("tcp://127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer listener.Close()

	conn, err := Dial(fmt.Sprintf("tcp://%s", listener.Addr()))
	if err != nil {
		t.Fatal(err)
	}
	conn.Close()
}

func TestListenAndDialUnix(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "test.sock")
	listener, err := Listen("unix://" + socketPath)
	if err != nil {
		t.Fatal(err)
	}
	defer listener.Close()

	conn, err := Dial("unix://" + socketPath)
	if err != nil {
		t.Fatal(err)
	}
	conn.Close()
}

func TestListenWithLimit(t *testing.T) {
	listener, err := ListenWithLimit("tcp://127.0.0.1:0", 1)
	if err != nil {
		t.Fatal(err)
	}
	defer listener.Close()

	conn, err := Dial(fmt.Sprintf("tcp://%s", listener.Addr()))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	accepted, err := listener.Accept()
	if err != nil {
		t.Fatal(err)
	}
	accepted.Close()
}

func TestListenRejectsBadConnectionString(t *testing.T) {
	if _, err := Listen("tcp://not a host"); err == nil {
		t.Fatal("expected error")
	}
}
