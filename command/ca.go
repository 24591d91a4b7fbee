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
	"fmt"
	"strconv"

	"github.com/paysimlabs/hsmsim/derivation"
	"github.com/paysimlabs/hsmsim/hsmcrypto"
)

// handleCA translates a PIN block from encryption under the TPK to
// encryption under the destination key. The clear PIN exists only inside
// this function.
func (p *Processor) handleCA(request *Request) *Response {
	response := NewResponse(ResponseCode("CA"), ErrorNone)
	fields := request.Fields

	tpkField, _ := fields.Get("TPK")
	tpk, err := p.decryptKey(tpkField)
	if err != nil {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}
	if !p.policy.SkipParity && !hsmcrypto.CheckOddParity(tpk) {
		return response.fail(p.policy.approve(ErrorTerminalKeyParity))
	}

	destinationField, _ := fields.Get("Destination Key")
	destinationKey, err := p.decryptKey(destinationField)
	if err != nil {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}
	if !p.policy.SkipParity && !hsmcrypto.CheckOddParity(destinationKey) {
		return response.fail(p.policy.approve(ErrorTerminalKeyParity))
	}

	// clearPINFromFields reads "PIN Block"; CA carries it as "Source PIN Block".
	source := NewFieldMap()
	if sourceBlock, ok := fields.Get("Source PIN Block"); ok {
		source.Add("PIN Block", sourceBlock)
	}
	pin, code := p.clearPINFromFields(source, tpk)
	if code != ErrorNone {
		return response.fail(p.policy.approve(code))
	}

	maxField, _ := fields.Get("Maximum PIN Length")
	maxLength, err := strconv.Atoi(string(maxField))
	if err != nil || len(pin) > maxLength {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}

	clearBlock, err := derivation.EncodePINBlock(pin)
	if err != nil {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}
	destinationBlock, err := hsmcrypto.EncryptTripleDESECB(destinationKey, clearBlock)
	if err != nil {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}

	response.Fields.Add("PIN Length", []byte(fmt.Sprintf("%02d", len(pin))))
	response.Fields.Add("Destination PIN Block", encodeHexField(destinationBlock))
	return response
}
