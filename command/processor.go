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
	"github.com/paysimlabs/hsmsim/keystore"
)

// FirmwareVersion is the constant firmware string reported by diagnostics.
const FirmwareVersion = "0007-E000"

// ResponseUnknown answers every request code without a handler.
const ResponseUnknown = "ZZ"

// responseCodes maps each supported request code to its fixed response code.
var responseCodes = map[string]string{
	"NC": "ND",
	"A0": "A1",
	"BU": "BV",
	"CA": "CB",
	"CW": "CX",
	"CY": "CZ",
	"DC": "DD",
	"EC": "ED",
	"FA": "FB",
	"HC": "HD",
}

// ResponseCode returns the response code for a request code, ResponseUnknown
// when the code has no handler.
func ResponseCode(code string) string {
	if response, ok := responseCodes[code]; ok {
		return response
	}
	return ResponseUnknown
}

// Processor executes parsed requests against the process-lifetime LMK and
// policy. It holds no mutable state and is safe for concurrent use.
type Processor struct {
	lmk    *keystore.LMK
	policy Policy
}

// NewProcessor returns a processor bound to lmk and policy.
func NewProcessor(lmk *keystore.LMK, policy Policy) *Processor {
	return &Processor{lmk: lmk, policy: policy}
}

// Handle runs the handler of request and returns the response. Handle never
// fails: semantic errors are reported inside the response error code and
// unsupported codes answer with ResponseUnknown.
func (p *Processor) Handle(request *Request) *Response {
	switch request.Code {
	case "NC":
		return p.handleNC(request)
	case "A0":
		return p.handleA0(request)
	case "BU":
		return p.handleBU(request)
	case "CA":
		return p.handleCA(request)
	case "CW":
		return p.handleCW(request)
	case "CY":
		return p.handleCY(request)
	case "DC":
		return p.handleDC(request)
	case "EC":
		return p.handleEC(request)
	case "FA":
		return p.handleFA(request)
	case "HC":
		return p.handleHC(request)
	default:
		return NewResponse(ResponseUnknown, ErrorNone)
	}
}
