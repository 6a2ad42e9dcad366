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

package index

// EntityID is the key the index stores documents under. The catalog
// layer derives these from a resource's defaulted identity fields; the
// index itself treats them as opaque, totally ordered (by string order)
// strings.
type EntityID string

// EntityKind scopes every index lookup: the world, field and value
// indexes are all partitioned by kind first, matching the catalog's
// one-index-per-resource-kind model.
type EntityKind string

// fieldKey is the composite (kind, dotted field path) key the field and
// value indexes are keyed on.
type fieldKey struct {
	Kind EntityKind
	Path string
}

func fieldKeyLess(a, b fieldKey) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Path < b.Path
}

func entityIDLess(a, b EntityID) bool { return a < b }

func entityKindLess(a, b EntityKind) bool { return a < b }
