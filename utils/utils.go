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

package utils

import (
	"fmt"
	"os"
	"os/user"
	"strings"
)

// GetConfigPathByName returns the default config path for a service name.
func GetConfigPathByName(name string) string {
	return fmt.Sprintf("configs/%s.yaml", name)
}

// AbsPath expands a leading ~/ or ./ to the current user's home directory.
func AbsPath(path string) (string, error) {
	if len(path) < 2 {
		return path, nil
	}
	if path[:2] == "~/" || path[:2] == "./" {
		usr, err := user.Current()
		if err != nil {
			return path, err
		}
		return usr.HomeDir + path[1:], nil
	}
	return path, nil
}

// FileExists reports whether the file at path exists.
func FileExists(path string) (bool, error) {
	absPath, err := AbsPath(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// HexNibbles renders data as uppercase hex split into space-separated bytes
// for debug dumps.
func HexNibbles(data []byte) string {
	var b strings.Builder
	for i, value := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		const digits = "0123456789ABCDEF"
		b.WriteByte(digits[value>>4])
		b.WriteByte(digits[value&0x0F])
	}
	return b.String()
}
