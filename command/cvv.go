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
	"bytes"

	"github.com/paysimlabs/hsmsim/derivation"
	"github.com/paysimlabs/hsmsim/hsmcrypto"
)

// handleCW generates a card verification value. Generation failures are
// never approved away: a CVV the issuer cannot reproduce must not be issued.
func (p *Processor) handleCW(request *Request) *Response {
	response := NewResponse(ResponseCode("CW"), ErrorNone)
	cvv, code := p.cardVerificationValue(request.Fields)
	if code != ErrorNone {
		return response.fail(code)
	}
	response.Fields.Add("CVV", []byte(cvv))
	return response
}

// handleCY verifies a supplied card verification value. approve_all
// overrides the mismatch and crypto codes but never the CVK parity code.
func (p *Processor) handleCY(request *Request) *Response {
	response := NewResponse(ResponseCode("CY"), ErrorNone)
	expected, code := p.cardVerificationValue(request.Fields)
	if code == ErrorVerificationFailed {
		return response.fail(p.policy.approve(code))
	}
	if code != ErrorNone {
		return response.fail(code)
	}
	supplied, ok := request.Fields.Get("CVV")
	if !ok {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}
	if !bytes.Equal([]byte(expected), supplied) {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}
	return response
}

// cardVerificationValue decrypts the CVK, checks its parity and derives the
// CVV from the PAN, expiry and service code fields.
func (p *Processor) cardVerificationValue(fields *FieldMap) (string, ErrorCode) {
	cvkField, ok := fields.Get("CVK")
	if !ok {
		return "", ErrorVerificationFailed
	}
	cvk, err := p.decryptKey(cvkField)
	if err != nil {
		return "", ErrorVerificationFailed
	}
	if !p.policy.SkipParity && !hsmcrypto.CheckOddParity(cvk) {
		return "", ErrorTerminalKeyParity
	}

	pan, _ := fields.Get("Primary Account Number")
	expiry, _ := fields.Get("Expiration Date")
	serviceCode, _ := fields.Get("Service Code")
	cvv, err := derivation.CalculateCVV(string(pan), string(expiry), string(serviceCode), cvk)
	if err != nil {
		return "", ErrorVerificationFailed
	}
	return cvv, ErrorNone
}
