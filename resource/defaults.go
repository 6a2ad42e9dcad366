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

package resource

import "fmt"

const (
	// DefaultNamespace is applied when Namespace is empty.
	DefaultNamespace = "default"
	// DefaultRevision is applied when Version is empty.
	DefaultRevision = "latest"
	// DefaultDockerfile is applied to a container runtime whose
	// Dockerfile path is empty.
	DefaultDockerfile = "Dockerfile"
)

// Defaults fills in r's namespace, version and (for a container runtime)
// dockerfile path when they are empty, in place. It is idempotent:
// calling it twice has the same effect as calling it once.
func Defaults(r *Resource) {
	if r.Namespace == "" {
		r.Namespace = DefaultNamespace
	}
	if r.Version == "" {
		r.Version = DefaultRevision
	}
	if r.Kind == KindRuntime && r.Runtime != nil && r.Runtime.Container != nil {
		if r.Runtime.Container.Dockerfile == "" {
			r.Runtime.Container.Dockerfile = DefaultDockerfile
		}
	}
}

// ID derives r's stable entity id, "/<version>/<namespace>/<kind>/<name>".
// Defaults should be called first so the id reflects the defaulted
// fields, matching the original factory's resource_id_builder. It
// surfaces ErrMissingKind unchanged when r has no resource_kind, matching
// resource_id's own "resource kind not specified" failure.
func ID(r *Resource) (string, error) {
	kind, err := r.DottedKind()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/%s/%s/%s/%s", r.Version, r.Namespace, kind, r.Name), nil
}
