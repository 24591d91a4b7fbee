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

// handleA0 generates a fresh odd-parity key and returns it encrypted under
// the LMK. When the request carries a ZMK/TMK envelope the key is also
// returned under that key, together with a short check value of the clear
// key for the receiving party.
func (p *Processor) handleA0(request *Request) *Response {
	response := NewResponse(ResponseCode("A0"), ErrorNone)

	newKey, err := hsmcrypto.RandomKey(hsmcrypto.DefaultKeyLength)
	if err != nil {
		return response.fail(ErrorVerificationFailed)
	}
	underLMK, err := p.lmk.Encrypt(newKey)
	if err != nil {
		return response.fail(ErrorVerificationFailed)
	}
	response.Fields.Add("Key under LMK", encodeKeyEnvelope(underLMK))

	transport, ok := request.Fields.Get("ZMK/TMK")
	if !ok {
		return response
	}

	zmk, err := p.decryptKey(transport)
	if err != nil {
		return response.fail(ErrorVerificationFailed)
	}
	underZMK, err := hsmcrypto.EncryptTripleDESECB(zmk, newKey)
	if err != nil {
		return response.fail(ErrorVerificationFailed)
	}
	checkValue, err := hsmcrypto.KeyCheckValue(newKey, hsmcrypto.KCVLengthShort)
	if err != nil {
		return response.fail(ErrorVerificationFailed)
	}
	response.Fields.Add("Key under ZMK", encodeKeyEnvelope(underZMK))
	response.Fields.Add("Key Check Value", checkValue)
	return response
}
