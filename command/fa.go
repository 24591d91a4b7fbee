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

// handleFA translates a ZPK from encryption under a ZMK to encryption under
// the LMK. The short check value of the clear ZPK lets the operator confirm
// the translation out of band.
func (p *Processor) handleFA(request *Request) *Response {
	response := NewResponse(ResponseCode("FA"), ErrorNone)
	fields := request.Fields

	zmkField, _ := fields.Get("ZMK")
	zmk, err := p.decryptKey(zmkField)
	if err != nil {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}
	if !p.policy.SkipParity && !hsmcrypto.CheckOddParity(zmk) {
		return response.fail(p.policy.approve(ErrorTerminalKeyParity))
	}

	zpkField, _ := fields.Get("ZPK")
	zpkCiphertext, err := decodeKeyField(zpkField)
	if err != nil {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}
	zpk, err := hsmcrypto.DecryptTripleDESECB(zmk, zpkCiphertext)
	if err != nil {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}
	if !p.policy.SkipParity && !hsmcrypto.CheckOddParity(zpk) {
		return response.fail(p.policy.approve(ErrorTerminalKeyParity))
	}

	underLMK, err := p.lmk.Encrypt(zpk)
	if err != nil {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}
	checkValue, err := hsmcrypto.KeyCheckValue(zpk, hsmcrypto.KCVLengthShort)
	if err != nil {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}

	response.Fields.Add("ZPK under LMK", encodeKeyEnvelope(underLMK))
	response.Fields.Add("Key Check Value", checkValue)
	return response
}
