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

package catalog

import (
	"fmt"
	"strings"

	"github.com/catalogdb/bda/bql"
)

// Filter is the wire-level query shape: a revision, a set of namespaces
// and kinds to restrict the search to, and a free-form bql predicate.
// Every field is optional; QueryFromFilter conjoins whichever are set.
type Filter struct {
	// Revision defaults to "latest" when empty.
	Revision string
	// Namespaces is a comma-separated list; empty or "all" means no
	// namespace restriction.
	Namespaces string
	// Kinds is a comma-separated list of dotted resource kinds; empty
	// or "all" means every kind the catalog has ever seen.
	Kinds string
	// Bql is conjoined with the namespace/revision clauses above; Kinds
	// selects index partitions and adds no clause.
	Bql string
}

// Query is a compiled Filter: the set of kinds to search (nil meaning
// every registered kind) and the single bql.Ast to evaluate against each.
type Query struct {
	Kinds []EntityKind
	Ast   bql.Ast
}

// QueryFromFilter compiles f into a Query, conjoining the revision,
// namespace and free bql clauses into one expression with `&&`, each
// non-empty clause parenthesized. The revision clause is always present
// (an empty Revision means "latest"), so an all-empty Filter compiles to
// `(.version == "latest")` over every kind.
func QueryFromFilter(f Filter) (Query, error) {
	var clauses []string
	if v := bqlFromVersion(f.Revision); v != "" {
		clauses = append(clauses, "("+v+")")
	}
	if ns := bqlFromNamespaces(f.Namespaces); ns != "" {
		clauses = append(clauses, "("+ns+")")
	}
	if b := strings.TrimSpace(f.Bql); b != "" {
		clauses = append(clauses, "("+b+")")
	}

	expr := "all"
	if len(clauses) > 0 {
		expr = strings.Join(clauses, " && ")
	}
	ast, err := bql.Parse(expr)
	if err != nil {
		return Query{}, fmt.Errorf("compiling filter to bql %q: %w", expr, err)
	}
	return Query{Kinds: parseKinds(f.Kinds), Ast: ast}, nil
}

func bqlFromVersion(revision string) string {
	v := strings.TrimSpace(revision)
	if v == "" {
		v = "latest"
	}
	return fmt.Sprintf(`.version == %s`, quoteText(v))
}

func bqlFromNamespaces(csv string) string {
	t := strings.TrimSpace(csv)
	if t == "" || strings.EqualFold(t, "all") {
		return ""
	}
	parts := splitTrim(csv)
	if len(parts) == 0 {
		return ""
	}
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = quoteText(strings.ToLower(p))
	}
	return fmt.Sprintf(".namespace in any [%s]", strings.Join(quoted, ","))
}

// parseKinds turns a comma-separated kinds filter into a kind list; an
// empty list means "every kind the catalog has seen".
func parseKinds(csv string) []EntityKind {
	t := strings.TrimSpace(csv)
	if t == "" || strings.EqualFold(t, "all") {
		return nil
	}
	parts := splitTrim(csv)
	kinds := make([]EntityKind, len(parts))
	for i, p := range parts {
		kinds[i] = EntityKind(p)
	}
	return kinds
}

func splitTrim(csv string) []string {
	var out []string
	for _, p := range strings.Split(csv, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// quoteText renders s as a double-quoted bql text literal, escaping
// backslashes and double quotes.
func quoteText(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
