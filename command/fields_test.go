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

package command

import (
	"bytes"
	"testing"
)

func TestFieldMapOrderAndEncode(t *testing.T) {
	fields := NewFieldMap()
	fields.Add("first", []byte("AA"))
	fields.Add("second", []byte("BB"))
	fields.Add("third", []byte("CC"))

	if fields.Len() != 3 {
		t.Fatalf("expected 3 fields, got %d", fields.Len())
	}
	if !bytes.Equal(fields.Encode(), []byte("AABBCC")) {
		t.Fatalf("Encode() = %q", fields.Encode())
	}
	names := []string{"first", "second", "third"}
	for i, field := range fields.Fields() {
		if field.Name != names[i] {
			t.Errorf("position %d: expected %q, got %q", i, names[i], field.Name)
		}
	}
}

func TestFieldMapReplaceKeepsPosition(t *testing.T) {
	fields := NewFieldMap()
	fields.Add("first", []byte("AA"))
	fields.Add("second", []byte("BB"))
	fields.Add("first", []byte("XX"))

	if fields.Len() != 2 {
		t.Fatalf("expected 2 fields, got %d", fields.Len())
	}
	if !bytes.Equal(fields.Encode(), []byte("XXBB")) {
		t.Fatalf("Encode() = %q", fields.Encode())
	}
	value, ok := fields.Get("first")
	if !ok || !bytes.Equal(value, []byte("XX")) {
		t.Fatalf("Get(first) = %q, %v", value, ok)
	}
}

func TestFieldMapMissingName(t *testing.T) {
	fields := NewFieldMap()
	if _, ok := fields.Get("absent"); ok {
		t.Fatal("expected miss")
	}
	if fields.Has("absent") {
		t.Fatal("expected miss")
	}
}

func TestResponseFailDropsFields(t *testing.T) {
	response := NewResponse("DD", ErrorNone)
	response.Fields.Add("secret", []byte("data"))
	response.fail(ErrorVerificationFailed)

	if response.Error != ErrorVerificationFailed {
		t.Fatalf("Error = %q", response.Error)
	}
	if response.Fields.Len() != 0 {
		t.Fatal("fields survived fail()")
	}
	if !bytes.Equal(response.Encode(), []byte("DD01")) {
		t.Fatalf("Encode() = %q", response.Encode())
	}
}

func TestPolicyApprove(t *testing.T) {
	strict := Policy{}
	if got := strict.approve(ErrorVerificationFailed); got != ErrorVerificationFailed {
		t.Fatalf("approve without ApproveAll = %q", got)
	}
	lenient := Policy{ApproveAll: true}
	if got := lenient.approve(ErrorTerminalKeyParity); got != ErrorNone {
		t.Fatalf("approve with ApproveAll = %q", got)
	}
}
