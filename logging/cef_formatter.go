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

package logging

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Almost compatible with the CEF white paper. Any extension key is allowed.

const defaultTimestampFormat = time.RFC3339
const defaultCEFLogStart = "CEF:0"
const defaultMessageDivider = "|"

// Default key names for the default fields
const (
	FieldKeyUnixTime  = "unixTime"
	FieldKeyProduct   = "product"
	FieldKeyVersion   = "version"
	FieldKeySeverity  = "severity"
	FieldKeyVendor    = "vendor"
	FieldKeyEventCode = "code"
)

// CEFTextFormatter formats logs into CEF text lines.
type CEFTextFormatter struct {
	// TimestampFormat to use for display when a full timestamp is printed
	TimestampFormat string
}

// Format renders a single log entry as
// CEF:0|vendor|product|version|signature|name|severity| extensions
func (f *CEFTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(defaultCEFLogStart)
	f.appendCEFLogPiece(b, entry.Data[FieldKeyVendor])
	f.appendCEFLogPiece(b, entry.Data[FieldKeyProduct])
	f.appendCEFLogPiece(b, entry.Data[FieldKeyVersion])
	f.appendCEFLogPiece(b, entry.Data[FieldKeyEventCode])
	f.appendCEFLogPiece(b, entry.Message)
	f.appendCEFLogPiece(b, severityByLevel(entry.Level))
	b.WriteString(defaultMessageDivider)

	// extension keys should come from the CEF dictionary; any key is
	// accepted here and emitted sorted for deterministic output
	for _, key := range otherExtensionKeys(entry.Data) {
		f.appendKeyValue(b, key, entry.Data[key])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func otherExtensionKeys(data logrus.Fields) []string {
	extensionKeys := make([]string, 0, len(data))
	for k := range data {
		if k != FieldKeyVendor && k != FieldKeyProduct && k != FieldKeyVersion &&
			k != FieldKeyEventCode && k != FieldKeySeverity {
			extensionKeys = append(extensionKeys, k)
		}
	}
	sort.Strings(extensionKeys)
	return extensionKeys
}

func (f *CEFTextFormatter) appendCEFLogPiece(b *bytes.Buffer, value interface{}) {
	b.WriteString(defaultMessageDivider)
	f.appendValue(b, value)
}

func (f *CEFTextFormatter) appendKeyValue(b *bytes.Buffer, key string, value interface{}) {
	b.WriteString(prepareString(key))
	b.WriteByte('=')
	f.appendValue(b, value)
	b.WriteByte(' ')
}

func (f *CEFTextFormatter) appendValue(b *bytes.Buffer, value interface{}) {
	stringVal, ok := value.(string)
	if !ok {
		stringVal = fmt.Sprint(value)
	}

	stringVal = prepareString(stringVal)

	// CEF doesn't define using quotes
	if len(stringVal) == 0 {
		b.WriteString(" ")
	} else {
		b.WriteString(stringVal)
	}
}

func prepareString(value string) string {
	stringVal := strings.TrimSpace(value)
	stringVal = strings.Replace(stringVal, "\n", " ", -1)
	stringVal = strings.Replace(stringVal, "\t", " ", -1)
	stringVal = strings.Replace(stringVal, `\`, `\\`, -1)
	stringVal = strings.Replace(stringVal, "|", `\|`, -1)
	stringVal = strings.Replace(stringVal, `=`, `\=`, -1)
	return stringVal
}

func severityByLevel(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel:
		return 0
	case logrus.InfoLevel:
		return 1
	case logrus.WarnLevel:
		return 3
	case logrus.ErrorLevel:
		return 6
	case logrus.FatalLevel:
		return 8
	case logrus.PanicLevel:
		return 10
	}
	return 0
}
