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
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/paysimlabs/hsmsim/utils"
)

const vendorName = "paysimlabs"

// TextFormatter returns a default logrus.TextFormatter with specific settings
func TextFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		FullTimestamp:    true,
		TimestampFormat:  time.RFC3339,
		QuoteEmptyFields: true}
}

// JSONFormatter returns a JSON formatter labelled with serviceName
func JSONFormatter(serviceName string) logrus.Formatter {
	return hsmJSONFormatter{
		Formatter: &logrus.JSONFormatter{
			FieldMap:        JSONFieldMap,
			TimestampFormat: time.RFC3339,
		},
		Fields: logrus.Fields{
			FieldKeyProduct:  serviceName,
			FieldKeyUnixTime: 0,
			FieldKeyVersion:  utils.VERSION,
		},
	}
}

// CEFFormatter returns a CEF formatter labelled with serviceName
func CEFFormatter(serviceName string) logrus.Formatter {
	return hsmCEFFormatter{
		CEFTextFormatter: CEFTextFormatter{
			TimestampFormat: time.RFC3339,
		},
		Fields: logrus.Fields{
			FieldKeyProduct:   serviceName,
			FieldKeyUnixTime:  0,
			FieldKeyVersion:   utils.VERSION,
			FieldKeyVendor:    vendorName,
			FieldKeyEventCode: 0,
		},
	}
}

// Re-use allocated entries when formatting messages.
var entryPool = sync.Pool{
	New: func() interface{} {
		return &logrus.Entry{}
	},
}

// copyEntry copies the entry `e` to a new entry and then adds all the fields
// in `fields` that are missing in the new entry data. It uses `entryPool` to
// re-use allocated entries.
func copyEntry(e *logrus.Entry, fields logrus.Fields) *logrus.Entry {
	ne := entryPool.Get().(*logrus.Entry)
	ne.Message = e.Message
	ne.Level = e.Level
	ne.Time = e.Time
	ne.Data = logrus.Fields{}
	for k, v := range fields {
		ne.Data[k] = v
	}
	for k, v := range e.Data {
		ne.Data[k] = v
	}
	return ne
}

// releaseEntry puts the given entry back to `entryPool`. It must be called
// if copyEntry is called.
func releaseEntry(e *logrus.Entry) {
	entryPool.Put(e)
}

// hsmJSONFormatter formats entries as JSON with the service fields added
// when the entry does not carry them already.
type hsmJSONFormatter struct {
	logrus.Formatter
	logrus.Fields
}

type hsmCEFFormatter struct {
	CEFTextFormatter
	logrus.Fields
}

// JSONFieldMap renames standard logrus fields on the JSON output.
var JSONFieldMap = logrus.FieldMap{
	logrus.FieldKeyTime:  "timestamp",
	logrus.FieldKeyMsg:   "msg",
	logrus.FieldKeyLevel: "level",
}

// Format formats an entry according to the given Formatter and Fields. The
// given entry is copied and not changed during the formatting process.
func (f hsmJSONFormatter) Format(e *logrus.Entry) ([]byte, error) {
	f.Fields[FieldKeyUnixTime] = unixTimeWithMilliseconds(e)

	ne := copyEntry(e, f.Fields)
	dataBytes, err := f.Formatter.Format(ne)
	releaseEntry(ne)
	return dataBytes, err
}

// Format formats an entry to CEF according to the given Formatter and
// Fields. The given entry is copied and not changed during formatting.
func (f hsmCEFFormatter) Format(e *logrus.Entry) ([]byte, error) {
	f.Fields[FieldKeyUnixTime] = unixTimeWithMilliseconds(e)

	ne := copyEntry(e, f.Fields)
	dataBytes, err := f.CEFTextFormatter.Format(ne)
	releaseEntry(ne)
	return dataBytes, err
}

func unixTimeWithMilliseconds(e *logrus.Entry) string {
	millis := e.Time.UnixNano() / 1000000
	return fmt.Sprintf("%.3f", float64(millis)/1000.0)
}

// TimeToString renders a timestamp the way unixTime fields are rendered.
func TimeToString(t time.Time) string {
	millis := t.UnixNano() / 1000000
	return fmt.Sprintf("%.3f", float64(millis)/1000.0)
}
