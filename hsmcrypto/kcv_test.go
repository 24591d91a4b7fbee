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

func TestKeyCheckValueIsZeroBlockCiphertext(t *testing.T) {
	key := []byte("0123456789abcdef")
	checkValue, err := KeyCheckValue(key, KCVLengthFull)
	if err != nil {
		t.Fatal(err)
	}
	if len(checkValue) != KCVLengthFull {
		t.Fatalf("expected %d bytes, got %d", KCVLengthFull, len(checkValue))
	}
	ciphertext, err := EncryptTripleDESECB(key, make([]byte, 16))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(checkValue, ciphertext[:KCVLengthFull]) {
		t.Fatal("check value is not the leading ciphertext of zero blocks")
	}
}

func TestKeyCheckValueShortIsPrefixOfFull(t *testing.T) {
	key := []byte("fedcba9876543210")
	short, err := KeyCheckValue(key, KCVLengthShort)
	if err != nil {
		t.Fatal(err)
	}
	full, err := KeyCheckValue(key, KCVLengthFull)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(short, full[:KCVLengthShort]) {
		t.Fatal("short check value is not a prefix of the full one")
	}
}

func TestKeyCheckValueRejectsBadKey(t *testing.T) {
	if _, err := KeyCheckValue(make([]byte, 7), KCVLengthShort); err != ErrInvalidKeyLength {
		t.Fatalf("expected ErrInvalidKeyLength, got %v", err)
	}
}
