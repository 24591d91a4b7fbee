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

// Package derivation implements the simplified PIN and card verification
// derivations used by the HSM core: ISO format 0 PIN block handling, VISA
// PVV and CVV-2 values.
package derivation

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// PIN length bounds of ISO format 0.
const (
	MinPINLength = 4
	MaxPINLength = 12
)

// PINBlockLength is the size of a clear ISO-0 PIN block in bytes.
const PINBlockLength = 8

// Errors returned by PIN block operations.
var (
	ErrInvalidPINLength      = errors.New("pin length out of range")
	ErrInvalidPINDigit       = errors.New("pin contains non-digit character")
	ErrInvalidPINBlockLength = errors.New("pin block must be 8 bytes long")
)

// GetClearPIN extracts the PIN digits from a clear ISO format 0 PIN block.
// The first nibble is the PIN length, the following nibbles are the digits.
// The account parameter is accepted for interface symmetry with other PIN
// block formats and is not consulted by the format 0 decoding here.
func GetClearPIN(pinBlock, account []byte) (string, error) {
	_ = account
	if len(pinBlock) != PINBlockLength {
		return "", ErrInvalidPINBlockLength
	}
	nibbles := strings.ToUpper(hex.EncodeToString(pinBlock))
	length := int(nibbles[0] - '0')
	if nibbles[0] >= 'A' && nibbles[0] <= 'F' {
		length = int(nibbles[0]-'A') + 10
	}
	if length < MinPINLength || length > MaxPINLength {
		return "", fmt.Errorf("%w: %d", ErrInvalidPINLength, length)
	}
	pin := nibbles[1 : 1+length]
	for _, c := range pin {
		if c < '0' || c > '9' {
			return "", ErrInvalidPINDigit
		}
	}
	return pin, nil
}

// EncodePINBlock builds a clear ISO format 0 PIN block from pin: the length
// nibble, the PIN digits and F padding.
func EncodePINBlock(pin string) ([]byte, error) {
	if len(pin) < MinPINLength || len(pin) > MaxPINLength {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPINLength, len(pin))
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return nil, ErrInvalidPINDigit
		}
	}
	nibbles := fmt.Sprintf("%X%s", len(pin), pin)
	nibbles += strings.Repeat("F", 2*PINBlockLength-len(nibbles))
	return hex.DecodeString(nibbles)
}
