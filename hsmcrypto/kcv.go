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

// Key check value lengths used on the wire.
const (
	KCVLengthShort = 6
	KCVLengthFull  = 16
)

// KeyCheckValue encrypts zero bytes under key and returns the leading length
// raw bytes of the ciphertext. Enough zero blocks are encrypted to cover
// length; in ECB mode every zero block produces the same ciphertext block.
func KeyCheckValue(key []byte, length int) ([]byte, error) {
	blocks := (length + 7) / 8
	zeroes := make([]byte, blocks*8)
	ciphertext, err := EncryptTripleDESECB(key, zeroes)
	if err != nil {
		return nil, err
	}
	return ciphertext[:length], nil
}
