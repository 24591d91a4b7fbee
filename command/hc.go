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
	"github.com/paysimlabs/hsmsim/hsmcrypto"
)

// handleHC generates a TMK replacement: a fresh odd-parity key returned both
// under the terminal's current key and under the LMK. A 16-hex current key
// field is a single-length key; the cipher layer widens it to two equal
// halves.
func (p *Processor) handleHC(request *Request) *Response {
	response := NewResponse(ResponseCode("HC"), ErrorNone)

	currentField, _ := request.Fields.Get("Current Key")
	currentKey, err := p.decryptKey(currentField)
	if err != nil {
		return response.fail(ErrorVerificationFailed)
	}

	newKey, err := hsmcrypto.RandomKey(hsmcrypto.DefaultKeyLength)
	if err != nil {
		return response.fail(ErrorVerificationFailed)
	}
	underCurrent, err := hsmcrypto.EncryptTripleDESECB(currentKey, newKey)
	if err != nil {
		return response.fail(ErrorVerificationFailed)
	}
	underLMK, err := p.lmk.Encrypt(newKey)
	if err != nil {
		return response.fail(ErrorVerificationFailed)
	}

	response.Fields.Add("New Key under Current Key", encodeKeyEnvelope(underCurrent))
	response.Fields.Add("New Key under LMK", encodeKeyEnvelope(underLMK))
	return response
}
