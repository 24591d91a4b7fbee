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

package hsmcrypto

import (
	"bytes"
	"testing"
)

func TestCheckOddParity(t *testing.T) {
	testCases := []struct {
		key      []byte
		expected bool
	}{
		{[]byte{0x01}, true},
		{[]byte{0x00}, false},
		{[]byte{0xFE}, true},
		{[]byte{0xFF}, false},
		{[]byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}, true},
		{[]byte{0x01, 0x03}, false},
		{nil, true},
	}
	for _, tc := range testCases {
		if got := CheckOddParity(tc.key); got != tc.expected {
			t.Errorf("CheckOddParity(% X) = %v, expected %v", tc.key, got, tc.expected)
		}
	}
}

func TestFixOddParity(t *testing.T) {
	testCases := []struct {
		in       []byte
		expected []byte
	}{
		{[]byte{0x00}, []byte{0x01}},
		{[]byte{0x01}, []byte{0x01}},
		{[]byte{0xFF}, []byte{0xFE}},
		{[]byte{0xFE}, []byte{0xFE}},
		{[]byte{0x10, 0x32}, []byte{0x10, 0x32}},
	}
	for _, tc := range testCases {
		if got := FixOddParity(tc.in); !bytes.Equal(got, tc.expected) {
			t.Errorf("FixOddParity(% X) = % X, expected % X", tc.in, got, tc.expected)
		}
	}
}

func TestFixOddParityAllBytes(t *testing.T) {
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	fixed := FixOddParity(all)
	if !CheckOddParity(fixed) {
		t.Fatal("fixed key fails the parity check")
	}
	for i := range all {
		if all[i]&0xFE != fixed[i]&0xFE {
			t.Fatalf("byte %#02x: data bits changed to %#02x", all[i], fixed[i])
		}
	}
}

func TestFixOddParityDoesNotMutateInput(t *testing.T) {
	in := []byte{0x00, 0xFF}
	FixOddParity(in)
	if in[0] != 0x00 || in[1] != 0xFF {
		t.Fatal("input slice was modified")
	}
}
