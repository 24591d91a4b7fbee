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

// handleNC answers diagnostics with the full-length LMK check value and the
// firmware string. The request payload is ignored.
func (p *Processor) handleNC(*Request) *Response {
	response := NewResponse(ResponseCode("NC"), ErrorNone)
	checkValue, err := p.lmk.CheckValue(hsmcrypto.KCVLengthFull)
	if err != nil {
		return response.fail(ErrorVerificationFailed)
	}
	response.Fields.Add("LMK Check Value", checkValue)
	response.Fields.Add("Firmware Version", []byte(FirmwareVersion))
	return response
}
