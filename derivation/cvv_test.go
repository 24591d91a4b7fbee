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

import "testing"

func TestCalculateCVVDeterministic(t *testing.T) {
	cvk := []byte("fedcba9876543210")
	first, err := CalculateCVV("4123456789012345", "2512", "201", cvk)
	if err != nil {
		t.Fatal(err)
	}
	second, err := CalculateCVV("4123456789012345", "2512", "201", cvk)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("same inputs produced %q and %q", first, second)
	}
	if len(first) != CVVLength {
		t.Fatalf("expected %d digits, got %q", CVVLength, first)
	}
	for _, c := range first {
		if c < '0' || c > '9' {
			t.Fatalf("non-digit in CVV %q", first)
		}
	}
}

func TestCalculateCVVRejectsNonHexInput(t *testing.T) {
	if _, err := CalculateCVV("no-hex-here", "2512", "201", []byte("fedcba9876543210")); err == nil {
		t.Fatal("expected error for non-hex account data")
	}
}
