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

// Package utils carries small shared helpers of the simulator services.
package utils

// VERSION is the current simulator suite version. Stored as a string so the
// value is easy to override via
// -ldflags "-X github.com/paysimlabs/hsmsim/utils.VERSION=X.X.X"
var VERSION = "0.2.0"
