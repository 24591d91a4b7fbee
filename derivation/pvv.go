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
	"encoding/hex"

	"github.com/paysimlabs/hsmsim/hsmcrypto"
)

// PVVLength is the number of ASCII digits in a PIN verification value.
const PVVLength = 4

// tspBlock assembles the hex-digit parts into one 16-nibble block,
// right-padded with '0' and truncated to 16 nibbles, then decoded to 8 bytes.
func tspBlock(parts ...string) ([]byte, error) {
	block := ""
	for _, part := range parts {
		block += part
	}
	for len(block) < 16 {
		block += "0"
	}
	return hex.DecodeString(block[:16])
}

// decimalize scans the hex ciphertext representation left to right, keeps
// the first want decimal digits and right-pads with '0' when fewer exist.
func decimalize(ciphertext []byte, want int) string {
	digits := make([]byte, 0, want)
	for _, c := range hex.EncodeToString(ciphertext) {
		if c >= '0' && c <= '9' {
			digits = append(digits, byte(c))
			if len(digits) == want {
				break
			}
		}
	}
	for len(digits) < want {
		digits = append(digits, '0')
	}
	return string(digits)
}

// CalculatePVV derives the simplified VISA PIN verification value from the
// account number, PVK indicator, PIN digits and the clear PVK pair. Only the
// first 16 bytes of the PVK pair take part in the encryption.
func CalculatePVV(account, pvki, pin string, pvkPair []byte) (string, error) {
	block, err := tspBlock(account, pvki, pin)
	if err != nil {
		return "", err
	}
	key := pvkPair
	if len(key) > 16 {
		key = key[:16]
	}
	ciphertext, err := hsmcrypto.EncryptTripleDESECB(key, block)
	if err != nil {
		return "", err
	}
	return decimalize(ciphertext, PVVLength), nil
}
