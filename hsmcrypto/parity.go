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

import "math/bits"

// CheckOddParity reports whether every byte of key has an odd number of set
// bits. The check covers all 8 bits of each byte, which is stricter than
// classical DES parity over the 7 data bits.
func CheckOddParity(key []byte) bool {
	for _, b := range key {
		if bits.OnesCount8(b)%2 == 0 {
			return false
		}
	}
	return true
}

// FixOddParity returns a copy of key with the low bit of each byte adjusted
// so that the whole byte has odd parity.
func FixOddParity(key []byte) []byte {
	out := make([]byte, len(key))
	for i, b := range key {
		dataParity := byte(bits.OnesCount8(b>>1) & 1)
		out[i] = (b &^ 1) | (dataParity ^ 1)
	}
	return out
}
