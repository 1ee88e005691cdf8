// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpx

import "strings"

// Field is a single name/value pair within a [Header].
type Field struct {
	Name  string
	Value string
}

// Header is an ordered multi-map of header fields: distinct header lines
// with the same name are preserved as separate entries, in the order they
// were received, with case-insensitive name lookup.
type Header []Field

// Add appends a new field, preserving any existing entry with the same
// name.
func (h *Header) Add(name, value string) {
	*h = append(*h, Field{Name: name, Value: value})
}

// Get returns the value of the first field matching name, case-insensitive.
func (h Header) Get(name string) (string, bool) {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Values returns the values of every field matching name, in order.
func (h Header) Values(name string) []string {
	var out []string
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			out = append(out, f.Value)
		}
	}
	return out
}

// Set replaces the value of the last field matching name, or appends a new
// field if none matches.
func (h *Header) Set(name, value string) {
	for i := len(*h) - 1; i >= 0; i-- {
		if strings.EqualFold((*h)[i].Name, name) {
			(*h)[i].Value = value
			return
		}
	}
	h.Add(name, value)
}
