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

// Package command implements the per-command message grammar and the command
// handlers of the HSM core. The parser partitions a request payload into a
// named field map; handlers validate the fields, run the cryptographic
// transformation and assemble the response.
package command

import (
	"fmt"
	"strings"
)

// Field is one named chunk of a request or response payload.
type Field struct {
	Name  string
	Value []byte
}

// FieldMap is an insertion-ordered name to bytes mapping. Order matters for
// response serialization and trace output; lookup is by name.
type FieldMap struct {
	fields []Field
	index  map[string]int
}

// NewFieldMap returns an empty field map.
func NewFieldMap() *FieldMap {
	return &FieldMap{index: make(map[string]int)}
}

// Add appends a field, replacing the value if the name is already present.
func (m *FieldMap) Add(name string, value []byte) {
	if i, ok := m.index[name]; ok {
		m.fields[i].Value = value
		return
	}
	m.index[name] = len(m.fields)
	m.fields = append(m.fields, Field{Name: name, Value: value})
}

// Get returns the value stored under name.
func (m *FieldMap) Get(name string) ([]byte, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return m.fields[i].Value, true
}

// Has reports whether name is present.
func (m *FieldMap) Has(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Len returns the number of fields.
func (m *FieldMap) Len() int {
	return len(m.fields)
}

// Fields returns the fields in insertion order.
func (m *FieldMap) Fields() []Field {
	return m.fields
}

// Encode concatenates all field values in insertion order without
// separators or length prefixes.
func (m *FieldMap) Encode() []byte {
	var out []byte
	for _, field := range m.fields {
		out = append(out, field.Value...)
	}
	return out
}

// String renders the map in wire order for trace output.
func (m *FieldMap) String() string {
	parts := make([]string, 0, len(m.fields))
	for _, field := range m.fields {
		parts = append(parts, fmt.Sprintf("%s=%q", field.Name, field.Value))
	}
	return strings.Join(parts, " ")
}
