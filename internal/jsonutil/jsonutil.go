// Copyright 2026 The Bda Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package jsonutil is the catalog's JSON codec seam: every other package
// marshals and unmarshals through a Config rather than calling
// encoding/json directly, so the implementation can be swapped for a
// faster encoder without touching call sites.
package jsonutil

import (
	"io"

	"github.com/bytedance/sonic"
)

// Config is a swappable set of JSON primitives. The zero value is not
// usable; construct one with Default.
type Config struct {
	Marshal       func(v any) ([]byte, error)
	MarshalIndent func(v any, prefix, indent string) ([]byte, error)
	Unmarshal     func(data []byte, v any) error
	NewEncoder    func(w io.Writer) Encoder
	NewDecoder    func(r io.Reader) Decoder
}

// Encoder streams one or more values out as JSON.
type Encoder interface {
	Encode(v any) error
}

// Decoder streams one or more values in from JSON.
type Decoder interface {
	Decode(v any) error
}

// Default returns the catalog's standard codec, backed by sonic in its
// default-compatible mode (sonic.ConfigDefault is API-compatible with
// encoding/json but considerably faster for the attribute-bag-heavy
// documents the catalog stores).
func Default() *Config {
	api := sonic.ConfigDefault
	return &Config{
		Marshal:       api.Marshal,
		MarshalIndent: api.MarshalIndent,
		Unmarshal:     api.Unmarshal,
		NewEncoder: func(w io.Writer) Encoder {
			return api.NewEncoder(w)
		},
		NewDecoder: func(r io.Reader) Decoder {
			return api.NewDecoder(r)
		},
	}
}

var std = Default()

// Marshal encodes v using the default codec.
func Marshal(v any) ([]byte, error) { return std.Marshal(v) }

// MarshalIndent encodes v as indented JSON using the default codec.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return std.MarshalIndent(v, prefix, indent)
}

// Unmarshal decodes data into v using the default codec.
func Unmarshal(data []byte, v any) error { return std.Unmarshal(data, v) }

// NewEncoder returns a streaming encoder writing to w using the default codec.
func NewEncoder(w io.Writer) Encoder { return std.NewEncoder(w) }

// NewDecoder returns a streaming decoder reading from r using the default codec.
func NewDecoder(r io.Reader) Decoder { return std.NewDecoder(r) }
