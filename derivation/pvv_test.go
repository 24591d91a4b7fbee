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

package derivation

import (
	"bytes"
	"testing"
)

func TestTSPBlock(t *testing.T) {
	testCases := []struct {
		parts    []string
		expected []byte
	}{
		{[]string{"1234"}, []byte{0x12, 0x34, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{[]string{"123456789012", "1", "1234"}, []byte{0x12, 0x34, 0x56, 0x78, 0x90, 0x12, 0x11, 0x23}},
		{[]string{}, make([]byte, 8)},
	}
	for _, tc := range testCases {
		block, err := tspBlock(tc.parts...)
		if err != nil {
			t.Fatalf("parts %v: %v", tc.parts, err)
		}
		if !bytes.Equal(block, tc.expected) {
			t.Errorf("parts %v: got % X, expected % X", tc.parts, block, tc.expected)
		}
	}
}

func TestTSPBlockRejectsNonHex(t *testing.T) {
	if _, err := tspBlock("12GZ"); err == nil {
		t.Fatal("expected error for non-hex input")
	}
}

func TestDecimalize(t *testing.T) {
	testCases := []struct {
		ciphertext []byte
		want       int
		expected   string
	}{
		{[]byte{0x12, 0x34, 0x56, 0x78}, 4, "1234"},
		{[]byte{0xAB, 0x1C, 0xD2, 0xEF}, 4, "1200"},
		{[]byte{0xAB, 0xCD, 0xEF, 0xAB}, 3, "000"},
		{[]byte{0xA1, 0xB2, 0xC3}, 3, "123"},
	}
	for _, tc := range testCases {
		if got := decimalize(tc.ciphertext, tc.want); got != tc.expected {
			t.Errorf("decimalize(% X, %d) = %q, expected %q", tc.ciphertext, tc.want, got, tc.expected)
		}
	}
}

func TestCalculatePVVDeterministic(t *testing.T) {
	pvkPair := []byte("0123456789abcdef")
	first, err := CalculatePVV("123456789012", "1", "1234", pvkPair)
	if err != nil {
		t.Fatal(err)
	}
	second, err := CalculatePVV("123456789012", "1", "1234", pvkPair)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("same inputs produced %q and %q", first, second)
	}
	if len(first) != PVVLength {
		t.Fatalf("expected %d digits, got %q", PVVLength, first)
	}
	for _, c := range first {
		if c < '0' || c > '9' {
			t.Fatalf("non-digit in PVV %q", first)
		}
	}
}

func TestCalculatePVVUsesFirstHalfOfLongKey(t *testing.T) {
	pvkPair := []byte("0123456789abcdef")
	extended := append(append([]byte{}, pvkPair...), []byte("ignoredx")...)
	short, err := CalculatePVV("123456789012", "1", "1234", pvkPair)
	if err != nil {
		t.Fatal(err)
	}
	long, err := CalculatePVV("123456789012", "1", "1234", extended)
	if err != nil {
		t.Fatal(err)
	}
	if short != long {
		t.Fatal("bytes past the first 16 affected the PVV")
	}
}
