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

// Package keystore holds the local master key of the simulator and the
// loaders that produce it from configuration or from HashiCorp Vault. The
// LMK is immutable after startup and is the only key material the process
// retains.
package keystore

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/paysimlabs/hsmsim/hsmcrypto"
)

// LMKLength is the binary length of the local master key.
const LMKLength = 16

// DefaultLMKHex is the development LMK used when no key is configured.
const DefaultLMKHex = "deafbeedeafbeedeafbeedeafbeedeaf"

// Errors of LMK construction. They are fatal at startup.
var (
	ErrInvalidLMKLength   = errors.New("LMK must be exactly 32 hex characters")
	ErrInvalidLMKEncoding = errors.New("LMK is not valid hex")
)

// LMK is the local master key. All working keys on the wire are encrypted
// under it. The value never leaves the struct.
type LMK struct {
	key []byte
}

// NewLMKFromHex parses a 32-character hex string into an LMK.
func NewLMKFromHex(value string) (*LMK, error) {
	raw, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLMKEncoding, err)
	}
	if len(raw) != LMKLength {
		return nil, ErrInvalidLMKLength
	}
	return &LMK{key: raw}, nil
}

// Encrypt encrypts block-aligned data under the LMK.
func (l *LMK) Encrypt(data []byte) ([]byte, error) {
	return hsmcrypto.EncryptTripleDESECB(l.key, data)
}

// Decrypt decrypts block-aligned data under the LMK.
func (l *LMK) Decrypt(data []byte) ([]byte, error) {
	return hsmcrypto.DecryptTripleDESECB(l.key, data)
}

// CheckValue returns the leading length bytes of the LMK's key check value.
func (l *LMK) CheckValue(length int) ([]byte, error) {
	return hsmcrypto.KeyCheckValue(l.key, length)
}
