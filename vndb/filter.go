// Package vndb provides a typed client for the VNDB Kana HTTP API.
package vndb

import (
	"fmt"
	"time"
)

// CompareOp is a comparison operator of the Kana filter grammar.
type CompareOp string

const (
	OpEq  CompareOp = "="
	OpNeq CompareOp = "!="
	OpLt  CompareOp = "<"
	OpGt  CompareOp = ">"
	OpGeq CompareOp = ">="
	OpLeq CompareOp = "<="
)

// dateLayout is the release-date format accepted by the API.
const dateLayout = "2006-01-02"

// Released constrains the release date of a VN with a single comparison.
// The operator and operand are fixed at construction; use NewReleased.
type Released struct {
	op   CompareOp
	date string
}

// NewReleased builds a release-date filter. The date must be a valid
// YYYY-MM-DD string and op any of the six comparison operators.
func NewReleased(op CompareOp, date string) (*Released, error) {
	switch op {
	case OpEq, OpNeq, OpLt, OpGt, OpGeq, OpLeq:
	default:
		return nil, fmt.Errorf("%w: released: unsupported operator %q", ErrIllformedQuery, op)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: released: %q is not a valid YYYY-MM-DD date", ErrIllformedQuery, date)
	}
	return &Released{op: op, date: date}, nil
}

func (r *Released) clause() []any {
	return []any{"released", string(r.op), r.date}
}

// Length constrains the playtime-estimate bucket (1, very short, through
// 5, very long) of a VN. Only equality comparisons are supported by the API.
type Length struct {
	op CompareOp
	n  int
}

// NewLength builds a length filter. Only OpEq and OpNeq are accepted.
func NewLength(op CompareOp, n int) (*Length, error) {
	if op != OpEq && op != OpNeq {
		return nil, fmt.Errorf("%w: length: only = and != are supported, got %q", ErrIllformedQuery, op)
	}
	return &Length{op: op, n: n}, nil
}

func (l *Length) clause() []any {
	return []any{"length", string(l.op), l.n}
}

// VNFilter narrows the result set of a VN search. The zero value matches
// everything. List-valued fields expand to one equality clause per element,
// all conjoined: a VN matches a multi-element Tag filter only when it
// carries every listed tag.
type VNFilter struct {
	// ID is the vndbid of a specific entry, e.g. "v2002".
	ID string
	// Lang lists language codes the VN must be available in ("en", "ja", ...).
	Lang []string
	// OLang lists original-language codes.
	OLang []string
	// Platform lists platform codes ("win", "psv", ...).
	Platform []string
	// Released constrains the release date.
	Released *Released
	// Length constrains the playtime-estimate bucket.
	Length *Length
	// Tag lists tag ids ("g7", ...); parent tags match too.
	Tag []string
	// DTag lists tag ids matched directly, excluding parent tags.
	DTag []string
	// AnimeID is an AniDB anime identifier.
	AnimeID int
}

// expr translates the filter into the Kana nested-list expression format:
// ["and", [field, op, value], ...]. A nil or empty filter yields an empty
// expression.
func (f *VNFilter) expr() []any {
	if f == nil {
		return []any{}
	}

	expr := []any{"and"}
	eachEq := func(field string, values []string) {
		for _, v := range values {
			expr = append(expr, []any{field, "=", v})
		}
	}

	if f.ID != "" {
		expr = append(expr, []any{"id", "=", f.ID})
	}
	eachEq("lang", f.Lang)
	eachEq("olang", f.OLang)
	eachEq("platform", f.Platform)
	if f.Released != nil {
		expr = append(expr, f.Released.clause())
	}
	if f.Length != nil {
		expr = append(expr, f.Length.clause())
	}
	eachEq("tag", f.Tag)
	eachEq("dtag", f.DTag)
	if f.AnimeID != 0 {
		expr = append(expr, []any{"anime_id", "=", f.AnimeID})
	}

	if len(expr) == 1 {
		return []any{}
	}
	return expr
}
