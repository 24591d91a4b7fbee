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

// handleBU computes a key check value over the key exactly as carried on the
// wire: the envelope hex is taken as the key itself, with no LMK decryption.
// The output is the full 16-byte check value, which is what the simulated
// device emits even though the documented KCV is 6 bytes.
func (p *Processor) handleBU(request *Request) *Response {
	response := NewResponse(ResponseCode("BU"), ErrorNone)
	field, ok := request.Fields.Get("Key")
	if !ok {
		return response.fail(ErrorVerificationFailed)
	}
	key, err := decodeKeyField(field)
	if err != nil {
		return response.fail(ErrorVerificationFailed)
	}
	checkValue, err := hsmcrypto.KeyCheckValue(key, hsmcrypto.KCVLengthFull)
	if err != nil {
		return response.fail(ErrorVerificationFailed)
	}
	response.Fields.Add("Key Check Value", checkValue)
	return response
}
