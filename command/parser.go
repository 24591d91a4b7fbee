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

import (
	"bytes"
	"fmt"
)

// Wire constants of the command grammar.
const (
	// FieldDelimiter separates variable-length fields.
	FieldDelimiter = ';'
	// EnvelopeLength is the size of a scheme-tagged encrypted key field:
	// one scheme tag byte plus 32 ASCII hex characters.
	EnvelopeLength = 33
	// KeyFieldLength is the unprefixed variant of an encrypted key field.
	KeyFieldLength = 32
)

// schemeTags are the envelope scheme tag bytes the parser recognises.
var schemeTags = []byte{'U', 'T', 'S', 'X'}

// Request is a parsed command: the two-letter code, a human description and
// the ordered field map. Order is significant only for trace output.
type Request struct {
	Code        string
	Description string
	Fields      *FieldMap
}

// cursor walks a payload sequentially. Boundaries are discovered by fixed
// widths, look-ahead sentinel bytes and delimiter scans only; the parser
// never interprets field semantics.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

func (c *cursor) take(n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes, %d left", ErrShortField, n, c.remaining())
	}
	value := c.data[c.pos : c.pos+n]
	c.pos += n
	return value, nil
}

func (c *cursor) peek() (byte, bool) {
	if c.remaining() == 0 {
		return 0, false
	}
	return c.data[c.pos], true
}

func (c *cursor) skipDelimiter() error {
	b, ok := c.peek()
	if !ok || b != FieldDelimiter {
		return fmt.Errorf("%w: expected %q delimiter", ErrMalformedCommand, FieldDelimiter)
	}
	c.pos++
	return nil
}

func (c *cursor) until(delim byte) ([]byte, error) {
	i := bytes.IndexByte(c.data[c.pos:], delim)
	if i < 0 {
		return nil, fmt.Errorf("%w: missing %q delimiter", ErrMalformedCommand, delim)
	}
	value := c.data[c.pos : c.pos+i]
	c.pos += i
	return value, nil
}

// takeKey reads an encrypted key field: a 33-byte envelope iff the next byte
// is one of tags, the alt-byte unprefixed variant otherwise. The test byte is
// not consumed when the envelope is absent.
func (c *cursor) takeKey(tags []byte, alt int) ([]byte, error) {
	if b, ok := c.peek(); ok && bytes.IndexByte(tags, b) >= 0 {
		return c.take(EnvelopeLength)
	}
	return c.take(alt)
}

// ParseRequest partitions payload into the named field map of the command
// identified by code. Trailing unread bytes are ignored, mirroring observed
// device tolerance. Unsupported codes parse successfully with no fields; the
// handler answers them with the ZZ response.
func ParseRequest(code string, payload []byte) (*Request, error) {
	c := &cursor{data: payload}
	fields := NewFieldMap()
	request := &Request{Code: code, Fields: fields}

	var err error
	switch code {
	case "NC":
		request.Description = "Perform diagnostics"
	case "A0":
		request.Description = "Generate a key"
		err = parseA0(c, fields)
	case "BU":
		request.Description = "Generate a key check value"
		err = parseBU(c, fields)
	case "CA":
		request.Description = "Translate PIN from TPK to destination key"
		err = parseCA(c, fields)
	case "CW":
		request.Description = "Generate a card verification value"
		err = parseCWVerification(c, fields, false)
	case "CY":
		request.Description = "Verify a card verification value"
		err = parseCWVerification(c, fields, true)
	case "DC":
		request.Description = "Verify a terminal PIN using the VISA method"
		err = parsePINVerification(c, fields, "TPK", false)
	case "EC":
		request.Description = "Verify an interchange PIN using the VISA method"
		err = parsePINVerification(c, fields, "ZPK", true)
	case "FA":
		request.Description = "Translate a ZPK from ZMK to LMK"
		err = parseFA(c, fields)
	case "HC":
		request.Description = "Generate a TMK replacement"
		err = parseHC(c, fields)
	default:
		request.Description = "Unknown command"
	}
	if err != nil {
		return nil, err
	}
	return request, nil
}

func parseA0(c *cursor, fields *FieldMap) error {
	mode, err := c.take(1)
	if err != nil {
		return err
	}
	fields.Add("Mode", mode)
	keyType, err := c.take(3)
	if err != nil {
		return err
	}
	fields.Add("Key Type", keyType)
	keyScheme, err := c.take(1)
	if err != nil {
		return err
	}
	fields.Add("Key Scheme", keyScheme)
	if mode[0] != '1' {
		return nil
	}
	if b, ok := c.peek(); !ok || b != FieldDelimiter {
		return nil
	}
	c.pos++
	flag, err := c.take(1)
	if err != nil {
		return err
	}
	fields.Add("ZMK/TMK Flag", flag)
	if b, ok := c.peek(); ok && b == 'U' {
		zmk, err := c.take(EnvelopeLength)
		if err != nil {
			return err
		}
		fields.Add("ZMK/TMK", zmk)
	}
	return nil
}

func parseBU(c *cursor, fields *FieldMap) error {
	keyTypeCode, err := c.take(2)
	if err != nil {
		return err
	}
	fields.Add("Key Type Code", keyTypeCode)
	lengthFlag, err := c.take(1)
	if err != nil {
		return err
	}
	fields.Add("Key Length Flag", lengthFlag)
	if b, ok := c.peek(); ok && b == 'U' {
		key, err := c.take(EnvelopeLength)
		if err != nil {
			return err
		}
		fields.Add("Key", key)
	}
	return nil
}

func parseCA(c *cursor, fields *FieldMap) error {
	tpk, err := c.takeKey(schemeTags, KeyFieldLength)
	if err != nil {
		return err
	}
	fields.Add("TPK", tpk)
	destination, err := c.takeKey(schemeTags, KeyFieldLength)
	if err != nil {
		return err
	}
	fields.Add("Destination Key", destination)
	for _, field := range []struct {
		name  string
		width int
	}{
		{"Maximum PIN Length", 2},
		{"Source PIN Block", 16},
		{"Source Format", 2},
		{"Destination Format", 2},
		{"Account Number", 12},
	} {
		value, err := c.take(field.width)
		if err != nil {
			return err
		}
		fields.Add(field.name, value)
	}
	return nil
}

func parseCWVerification(c *cursor, fields *FieldMap, withCVV bool) error {
	cvk, err := c.takeKey(schemeTags, KeyFieldLength)
	if err != nil {
		return err
	}
	fields.Add("CVK", cvk)
	if withCVV {
		cvv, err := c.take(3)
		if err != nil {
			return err
		}
		fields.Add("CVV", cvv)
	}
	pan, err := c.until(FieldDelimiter)
	if err != nil {
		return err
	}
	fields.Add("Primary Account Number", pan)
	if err := c.skipDelimiter(); err != nil {
		return err
	}
	expiry, err := c.take(4)
	if err != nil {
		return err
	}
	fields.Add("Expiration Date", expiry)
	serviceCode, err := c.take(3)
	if err != nil {
		return err
	}
	fields.Add("Service Code", serviceCode)
	return nil
}

func parsePINVerification(c *cursor, fields *FieldMap, terminalKeyName string, tokenFormat bool) error {
	terminalKey, err := c.takeKey([]byte{'U'}, KeyFieldLength)
	if err != nil {
		return err
	}
	fields.Add(terminalKeyName, terminalKey)
	pvkPair, err := c.takeKey([]byte{'U'}, KeyFieldLength)
	if err != nil {
		return err
	}
	fields.Add("PVK Pair", pvkPair)
	pinBlock, err := c.take(16)
	if err != nil {
		return err
	}
	fields.Add("PIN Block", pinBlock)
	format, err := c.take(2)
	if err != nil {
		return err
	}
	fields.Add("PIN Block Format Code", format)
	if tokenFormat && string(format) == "04" {
		token, err := c.take(18)
		if err != nil {
			return err
		}
		fields.Add("Token", token)
	} else {
		account, err := c.take(12)
		if err != nil {
			return err
		}
		fields.Add("Account Number", account)
	}
	pvki, err := c.take(1)
	if err != nil {
		return err
	}
	fields.Add("PVKI", pvki)
	pvv, err := c.take(4)
	if err != nil {
		return err
	}
	fields.Add("PVV", pvv)
	return nil
}

func parseFA(c *cursor, fields *FieldMap) error {
	zmk, err := c.takeKey([]byte{'U', 'T'}, KeyFieldLength)
	if err != nil {
		return err
	}
	fields.Add("ZMK", zmk)
	zpk, err := c.takeKey([]byte{'U', 'T', 'X'}, KeyFieldLength)
	if err != nil {
		return err
	}
	fields.Add("ZPK", zpk)
	return nil
}

func parseHC(c *cursor, fields *FieldMap) error {
	currentKey, err := c.takeKey([]byte{'U'}, 16)
	if err != nil {
		return err
	}
	fields.Add("Current Key", currentKey)
	if err := c.skipDelimiter(); err != nil {
		return err
	}
	tmkScheme, err := c.take(1)
	if err != nil {
		return err
	}
	fields.Add("Key Scheme (TMK)", tmkScheme)
	lmkScheme, err := c.take(1)
	if err != nil {
		return err
	}
	fields.Add("Key Scheme (LMK)", lmkScheme)
	return nil
}
