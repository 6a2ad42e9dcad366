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

package bql

// Ast is the parsed form of a filter expression. Each node is a closed
// algebraic type; the zero value (nil Ast) never appears in a successfully
// parsed tree.
type Ast interface {
	astNode()
}

// Intersection is the conjunction of Left and Right (logical and, set
// intersection of matching entity ids).
type Intersection struct {
	Left, Right Ast
}

// Union is the disjunction of Left and Right (logical or, set union).
type Union struct {
	Left, Right Ast
}

// Difference matches entities in Left but not in Right.
type Difference struct {
	Left, Right Ast
}

// All matches every entity of the searched kind.
type All struct{}

// Equal matches entities whose field FieldName holds a value equal to
// FieldValue. A nil FieldValue means "is null/defined-as-bottom" (the
// bareword null/nil/none/nothing form). Negate inverts the match.
type Equal struct {
	FieldName  string
	FieldValue *Value
	Negate     bool
}

// Defined matches entities that have FieldName present at all (any value,
// including an explicit null leaf). Negate inverts the match.
type Defined struct {
	FieldName string
	Negate    bool
}

// LessThan, LessThanOrEqual, GreaterThan and GreaterThanOrEqual match
// entities whose field FieldName compares accordingly against FieldValue
// under the Value total order.
type LessThan struct {
	FieldName  string
	FieldValue Value
}

type LessThanOrEqual struct {
	FieldName  string
	FieldValue Value
}

type GreaterThan struct {
	FieldName  string
	FieldValue Value
}

type GreaterThanOrEqual struct {
	FieldName  string
	FieldValue Value
}

// ContainsAll matches entities whose field FieldName holds every value in
// FieldValues (set membership, "in all", where `#` or `@` may stand for
// "in"). A nil element means null.
// Negate inverts the match.
type ContainsAll struct {
	FieldName   string
	FieldValues []*Value
	Negate      bool
}

// ContainsAny matches entities whose field FieldName holds at least one
// value in FieldValues ("in any", where `#` or `@` may stand for "in").
// Negate inverts the match.
type ContainsAny struct {
	FieldName   string
	FieldValues []*Value
	Negate      bool
}

func (Intersection) astNode()       {}
func (Union) astNode()              {}
func (Difference) astNode()         {}
func (All) astNode()                {}
func (Equal) astNode()              {}
func (Defined) astNode()            {}
func (LessThan) astNode()           {}
func (LessThanOrEqual) astNode()    {}
func (GreaterThan) astNode()        {}
func (GreaterThanOrEqual) astNode() {}
func (ContainsAll) astNode()        {}
func (ContainsAny) astNode()        {}
