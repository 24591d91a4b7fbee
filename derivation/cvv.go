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

package derivation

import "github.com/paysimlabs/hsmsim/hsmcrypto"

// CVVLength is the number of ASCII digits in a card verification value.
const CVVLength = 3

// CalculateCVV derives the simplified CVV-2 from the account number, expiry
// date and service code under the clear CVK.
func CalculateCVV(account, expiry, serviceCode string, cvk []byte) (string, error) {
	block, err := tspBlock(account, expiry, serviceCode)
	if err != nil {
		return "", err
	}
	ciphertext, err := hsmcrypto.EncryptTripleDESECB(cvk, block)
	if err != nil {
		return "", err
	}
	return decimalize(ciphertext, CVVLength), nil
}
