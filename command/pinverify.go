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

// pvkPairLength is the clear double-length PVK pair size in bytes.
const pvkPairLength = 16

// handleDC verifies a terminal PIN: the PIN block was encrypted under a TPK.
func (p *Processor) handleDC(request *Request) *Response {
	return p.verifyPIN(request, ResponseCode("DC"), "TPK")
}

// handleEC verifies an interchange PIN: the PIN block was encrypted under a
// ZPK and format 04 carries a token in place of the account number.
func (p *Processor) handleEC(request *Request) *Response {
	return p.verifyPIN(request, ResponseCode("EC"), "ZPK")
}

// verifyPIN is the shared VISA PVV verification path of DC and EC. The
// validation order fixes which error code wins when several would apply:
// terminal key parity, PVK parity, PVK length, then the PVV comparison.
// approve_all overrides every code here except the length check.
func (p *Processor) verifyPIN(request *Request, responseCode, terminalKeyName string) *Response {
	response := NewResponse(responseCode, ErrorNone)
	fields := request.Fields

	terminalKeyField, ok := fields.Get(terminalKeyName)
	if !ok {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}
	terminalKey, err := p.decryptKey(terminalKeyField)
	if err != nil {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}
	if !p.policy.SkipParity && !hsmcrypto.CheckOddParity(terminalKey) {
		return response.fail(p.policy.approve(ErrorTerminalKeyParity))
	}

	pvkField, ok := fields.Get("PVK Pair")
	if !ok {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}
	pvkPair, err := p.decryptKey(pvkField)
	if err != nil {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}
	if !p.policy.SkipParity && !hsmcrypto.CheckOddParity(pvkPair) {
		return response.fail(p.policy.approve(ErrorPVKParity))
	}
	if len(pvkPair) != pvkPairLength {
		return response.fail(ErrorPVKNotDoubleLength)
	}

	pin, code := p.clearPINFromFields(fields, terminalKey)
	if code != ErrorNone {
		return response.fail(p.policy.approve(code))
	}

	account, ok := fields.Get("Token")
	if !ok {
		if account, ok = fields.Get("Account Number"); !ok {
			return response.fail(p.policy.approve(ErrorVerificationFailed))
		}
	}
	pvki, _ := fields.Get("PVKI")
	suppliedPVV, _ := fields.Get("PVV")

	expectedPVV, err := derivation.CalculatePVV(string(account), string(pvki), pin[:4], pvkPair)
	if err != nil {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}
	if !bytes.Equal([]byte(expectedPVV), suppliedPVV) {
		return response.fail(p.policy.approve(ErrorVerificationFailed))
	}
	return response
}

// clearPINFromFields decrypts the PIN block under terminalKey and extracts
// the clear PIN digits. Every failure maps to the generic code 01.
func (p *Processor) clearPINFromFields(fields *FieldMap, terminalKey []byte) (string, ErrorCode) {
	blockField, ok := fields.Get("PIN Block")
	if !ok {
		return "", ErrorVerificationFailed
	}
	block, err := decodeHexField(blockField)
	if err != nil {
		return "", ErrorVerificationFailed
	}
	clearBlock, err := hsmcrypto.DecryptTripleDESECB(terminalKey, block)
	if err != nil {
		return "", ErrorVerificationFailed
	}
	account, _ := fields.Get("Account Number")
	pin, err := derivation.GetClearPIN(clearBlock, account)
	if err != nil {
		return "", ErrorVerificationFailed
	}
	return pin, ErrorNone
}
