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

package protocol

import (
	"bytes"
	"testing"
)

func TestBuildParseRoundTrip(t *testing.T) {
	testCases := []struct {
		header  []byte
		code    string
		payload []byte
	}{
		{nil, "NC", nil},
		{nil, "A0", []byte("0002U")},
		{[]byte("SSSS"), "NC", nil},
		{[]byte("0123"), "BU", []byte("021UA97831862E31CCC36E854FE184EE6453")},
	}
	for _, tc := range testCases {
		body := append([]byte(tc.code), tc.payload...)
		frame, err := BuildFrame(tc.header, body)
		if err != nil {
			t.Fatalf("%s: %v", tc.code, err)
		}
		code, payload, err := ParseFrame(frame, tc.header)
		if err != nil {
			t.Fatalf("%s: %v", tc.code, err)
		}
		if code != tc.code {
			t.Errorf("expected code %q, got %q", tc.code, code)
		}
		if !bytes.Equal(payload, tc.payload) {
			t.Errorf("%s: expected payload %q, got %q", tc.code, tc.payload, payload)
		}
	}
}

func TestParseFrameExplicitBytes(t *testing.T) {
	raw := []byte{0x00, 0x06, 'S', 'S', 'S', 'S', 'N', 'C'}
	code, payload, err := ParseFrame(raw, []byte("SSSS"))
	if err != nil {
		t.Fatal(err)
	}
	if code != "NC" {
		t.Fatalf("expected NC, got %q", code)
	}
	if len(payload) != 0 {
		t.Fatalf("expected empty payload, got % X", payload)
	}
}

func TestParseFrameLengthMismatch(t *testing.T) {
	frame, err := BuildFrame(nil, []byte("NC"))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := ParseFrame(append(frame, 'X'), nil); err != ErrMalformedFrame {
		t.Fatalf("trailing byte: expected ErrMalformedFrame, got %v", err)
	}
	if _, _, err := ParseFrame(frame[:len(frame)-1], nil); err != ErrMalformedFrame {
		t.Fatalf("truncated body: expected ErrMalformedFrame, got %v", err)
	}
}

func TestParseFrameHeaderMismatch(t *testing.T) {
	frame, err := BuildFrame([]byte("SSSS"), []byte("NC"))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := ParseFrame(frame, []byte("XXXX")); err != ErrBadHeader {
		t.Fatalf("expected ErrBadHeader, got %v", err)
	}
}

func TestParseFrameShort(t *testing.T) {
	testCases := []struct {
		raw    []byte
		header []byte
	}{
		{[]byte{0x00}, nil},
		{[]byte{0x00, 0x00}, nil},
		{[]byte{0x00, 0x01, 'N'}, nil},
		{[]byte{0x00, 0x02, 'S', 'S'}, []byte("SSSS")},
	}
	for _, tc := range testCases {
		if _, _, err := ParseFrame(tc.raw, tc.header); err != ErrShortFrame {
			t.Errorf("raw % X: expected ErrShortFrame, got %v", tc.raw, err)
		}
	}
}

func TestBuildFrameTooLarge(t *testing.T) {
	if _, err := BuildFrame(nil, make([]byte, MaxFrameBodySize+1)); err != ErrFrameTooLarge {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
	if _, err := BuildFrame(make([]byte, 4), make([]byte, MaxFrameBodySize-3)); err != ErrFrameTooLarge {
		t.Fatalf("header counts into the limit: expected ErrFrameTooLarge, got %v", err)
	}
}
