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
	"encoding/hex"
	"fmt"
)

// SchemeTagU is the only envelope tag stripped before hex interpretation.
// Other tags stay in the text and make the hex decode fail, matching the
// observed device behaviour for unsupported schemes.
const SchemeTagU = 'U'

// decodeKeyField converts a wire key field into binary key material: drop a
// leading 'U' tag if present, then hex-decode the rest.
func decodeKeyField(field []byte) ([]byte, error) {
	if len(field) > 0 && field[0] == SchemeTagU {
		field = field[1:]
	}
	return decodeHexField(field)
}

// decodeHexField hex-decodes a field without envelope handling.
func decodeHexField(field []byte) ([]byte, error) {
	value := make([]byte, hex.DecodedLen(len(field)))
	if _, err := hex.Decode(value, field); err != nil {
		return nil, fmt.Errorf("field %q is not valid hex: %w", field, err)
	}
	return value, nil
}

// decryptKey decodes a wire key field and decrypts the result under the LMK.
func (p *Processor) decryptKey(field []byte) ([]byte, error) {
	ciphertext, err := decodeKeyField(field)
	if err != nil {
		return nil, err
	}
	return p.lmk.Decrypt(ciphertext)
}

// encodeKeyEnvelope renders ciphertext as a 'U'-tagged uppercase hex field.
func encodeKeyEnvelope(ciphertext []byte) []byte {
	out := make([]byte, 0, 1+hex.EncodedLen(len(ciphertext)))
	out = append(out, SchemeTagU)
	return append(out, fmt.Sprintf("%X", ciphertext)...)
}

// encodeHexField renders data as uppercase hex without an envelope tag.
func encodeHexField(data []byte) []byte {
	return []byte(fmt.Sprintf("%X", data))
}
