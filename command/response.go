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

// Response is a complete reply: the fixed response code of the command, a
// two-digit error code and the result fields. The response code never
// depends on the error branch taken.
type Response struct {
	Code   string
	Error  ErrorCode
	Fields *FieldMap
}

// NewResponse returns a response with the given codes and no fields.
func NewResponse(code string, errorCode ErrorCode) *Response {
	return &Response{Code: code, Error: errorCode, Fields: NewFieldMap()}
}

// fail sets the error code and drops any fields added so far. Failed
// commands answer with codes only.
func (r *Response) fail(code ErrorCode) *Response {
	r.Error = code
	r.Fields = NewFieldMap()
	return r
}

// Encode serialises the response body: response code, error code, then all
// fields in insertion order.
func (r *Response) Encode() []byte {
	body := make([]byte, 0, len(r.Code)+len(r.Error))
	body = append(body, r.Code...)
	body = append(body, r.Error...)
	return append(body, r.Fields.Encode()...)
}
