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

// Package resource defines the catalog's record shape: a resource
// document, its tagged-union kind (a deployable function or a running
// container), and the defaulting/identity rules applied on Put.
package resource

import "errors"

// ErrMissingKind is returned by DottedKind/ID when a resource carries
// neither a Function body nor a Runtime/Container body — the "missing
// resource_kind is an error at put time" case, this package's only
// schema-validation error.
var ErrMissingKind = errors.New("resource: resource_kind not specified")

// Kind names the two resource_kind variants a Resource can hold.
type Kind string

const (
	KindFunction Kind = "function"
	KindRuntime  Kind = "runtime"
)

// Function describes a deployable function resource.
type Function struct {
	Runtime    string            `json:"runtime"`
	Entrypoint string            `json:"entrypoint"`
	Env        map[string]string `json:"env,omitempty"`
}

// Container describes a runtime resource's container image build.
type Container struct {
	Image      string `json:"image"`
	Dockerfile string `json:"dockerfile"`
}

// Runtime wraps the single variant a running resource can currently be:
// a container. Future variants would be added here, not by widening
// Resource itself.
type Runtime struct {
	Container *Container `json:"container,omitempty"`
}

// Resource is the catalog's record shape. Exactly one of Function or
// Runtime is populated, selected by Kind.
type Resource struct {
	Version     string         `json:"version"`
	Namespace   string         `json:"namespace"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty"`

	Kind     Kind      `json:"resource_kind"`
	Function *Function `json:"function,omitempty"`
	Runtime  *Runtime  `json:"runtime,omitempty"`
}

// DottedKind renders r's resource_kind as the dotted string §6 derives
// both the id and the GetKinds listing from: "function" or
// "runtime.container". It returns ErrMissingKind if r doesn't actually
// carry the body its Kind claims (a Function record with no Function, or
// a Runtime record with no Container), mirroring the original's
// resource_kind_to_string, which returns None in exactly those cases.
func (r *Resource) DottedKind() (string, error) {
	switch {
	case r.Kind == KindFunction && r.Function != nil:
		return "function", nil
	case r.Kind == KindRuntime && r.Runtime != nil && r.Runtime.Container != nil:
		return "runtime.container", nil
	default:
		return "", ErrMissingKind
	}
}
