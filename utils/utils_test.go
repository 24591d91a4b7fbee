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

package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetConfigPathByName(t *testing.T) {
	if got := GetConfigPathByName("hsm-simulator"); got != "configs/hsm-simulator.yaml" {
		t.Fatalf("GetConfigPathByName = %q", got)
	}
}

func TestAbsPathExpandsHome(t *testing.T) {
	path, err := AbsPath("~/configs/test.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(path, "~") {
		t.Fatalf("home not expanded: %q", path)
	}
	if !strings.HasSuffix(path, "/configs/test.yaml") {
		t.Fatalf("suffix lost: %q", path)
	}
}

func TestAbsPathKeepsAbsolute(t *testing.T) {
	path, err := AbsPath("/etc/hsm/config.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if path != "/etc/hsm/config.yaml" {
		t.Fatalf("absolute path changed: %q", path)
	}
}

func TestFileExists(t *testing.T) {
	file := filepath.Join(t.TempDir(), "exists.yaml")
	if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	exists, err := FileExists(file)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("expected file to exist")
	}
	exists, err = FileExists(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("expected file to be missing")
	}
}

func TestHexNibbles(t *testing.T) {
	testCases := []struct {
		in       []byte
		expected string
	}{
		{nil, ""},
		{[]byte{0x00}, "00"},
		{[]byte{0xDE, 0xAD, 0xBE, 0xEF}, "DE AD BE EF"},
	}
	for _, tc := range testCases {
		if got := HexNibbles(tc.in); got != tc.expected {
			t.Errorf("HexNibbles(% X) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}
