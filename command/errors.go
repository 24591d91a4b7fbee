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

import "errors"

// ErrorCode is the two-digit ASCII error code emitted in every response.
type ErrorCode string

// Error codes a real device returns for the supported commands.
const (
	ErrorNone               ErrorCode = "00"
	ErrorVerificationFailed ErrorCode = "01"
	ErrorTerminalKeyParity  ErrorCode = "10"
	ErrorPVKParity          ErrorCode = "11"
	ErrorPVKNotDoubleLength ErrorCode = "27"
)

// Grammar failures. These are fatal to the connection: the session layer
// closes the socket without sending a reply.
var (
	ErrMalformedCommand = errors.New("malformed command payload")
	ErrShortField       = errors.New("field truncated at end of payload")
)
