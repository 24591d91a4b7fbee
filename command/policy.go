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

// Policy holds the process-lifetime behaviour flags. They mutate only
// error-code selection and never change which response code is emitted.
type Policy struct {
	// SkipParity disables odd-parity checks on decrypted working keys.
	SkipParity bool
	// ApproveAll overrides verification and parity failures with success
	// on the PIN paths; see the per-handler override rules.
	ApproveAll bool
}

// approve returns ErrorNone when ApproveAll is set, code otherwise.
func (p Policy) approve(code ErrorCode) ErrorCode {
	if p.ApproveAll {
		return ErrorNone
	}
	return code
}
