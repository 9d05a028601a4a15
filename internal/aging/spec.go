package aging

import (
	"fmt"
	"math"
)

// Unbounded marks the open upper end of the final bucket.
const Unbounded = math.MaxInt

// Bucket is one half-open day range [Lower, Upper). Aging extracts that
// arrive pre-bucketed carry the bucket totals in AmountColumn (and, for
// stock, QuantityColumn).
type Bucket struct {
	Label          string
	Lower          int
	Upper          int
	AmountColumn   string
	QuantityColumn string
}

// Contains reports whether a day count falls in the bucket.
func (b Bucket) Contains(days int) bool {
	return days >= b.Lower && days < b.Upper
}

// Spec is an ordered set of buckets partitioning [first.Lower, ∞).
type Spec []Bucket

// Classify returns the index of the bucket holding days, or -1 when days
// falls below the first bucket.
func (s Spec) Classify(days int) int {
	for i, b := range s {
		if b.Contains(days) {
			return i
		}
	}
	return -1
}

// Labels returns bucket labels in order.
func (s Spec) Labels() []string {
	labels := make([]string, len(s))
	for i, b := range s {
		labels[i] = b.Label
	}
	return labels
}

// AmountColumns returns the per-bucket amount columns in order.
func (s Spec) AmountColumns() []string {
	cols := make([]string, 0, len(s))
	for _, b := range s {
		if b.AmountColumn != "" {
			cols = append(cols, b.AmountColumn)
		}
	}
	return cols
}

// QuantityColumns returns the per-bucket quantity columns in order.
func (s Spec) QuantityColumns() []string {
	cols := make([]string, 0, len(s))
	for _, b := range s {
		if b.QuantityColumn != "" {
			cols = append(cols, b.QuantityColumn)
		}
	}
	return cols
}

// Tail returns the buckets whose lower bound is at least fromDays.
func (s Spec) Tail(fromDays int) Spec {
	var tail Spec
	for _, b := range s {
		if b.Lower >= fromDays {
			tail = append(tail, b)
		}
	}
	return tail
}

// Head returns the buckets that end at or before toDays.
func (s Spec) Head(toDays int) Spec {
	var head Spec
	for _, b := range s {
		if b.Upper <= toDays {
			head = append(head, b)
		}
	}
	return head
}

// Range returns the buckets lying entirely inside [from, to).
func (s Spec) Range(from, to int) Spec {
	var r Spec
	for _, b := range s {
		if b.Lower >= from && b.Upper <= to {
			r = append(r, b)
		}
	}
	return r
}

// ValidationError describes a single bucket layout violation.
type ValidationError struct {
	Index       int
	Label       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("bucket %d [%s]: %s", e.Index, e.Label, e.Description)
}

// Validate checks that bounds strictly increase, that consecutive buckets
// meet with no gap or overlap, and that the final bucket is unbounded.
func (s Spec) Validate() []ValidationError {
	if len(s) == 0 {
		return []ValidationError{{Index: -1, Description: "spec has no buckets"}}
	}

	var errs []ValidationError
	for i, b := range s {
		if b.Lower >= b.Upper {
			errs = append(errs, ValidationError{
				Index:       i,
				Label:       b.Label,
				Description: fmt.Sprintf("lower bound %d not below upper bound %d", b.Lower, b.Upper),
			})
		}
		if i == 0 {
			continue
		}
		prev := s[i-1]
		switch {
		case b.Lower > prev.Upper:
			errs = append(errs, ValidationError{
				Index:       i,
				Label:       b.Label,
				Description: fmt.Sprintf("gap between %d and %d", prev.Upper, b.Lower),
			})
		case b.Lower < prev.Upper:
			errs = append(errs, ValidationError{
				Index:       i,
				Label:       b.Label,
				Description: fmt.Sprintf("overlaps previous bucket ending at %d", prev.Upper),
			})
		}
	}

	last := s[len(s)-1]
	if last.Upper != Unbounded {
		errs = append(errs, ValidationError{
			Index:       len(s) - 1,
			Label:       last.Label,
			Description: "final bucket must be unbounded",
		})
	}
	return errs
}

// MustValid panics when a built-in spec is malformed.
func MustValid(s Spec) Spec {
	if errs := s.Validate(); len(errs) > 0 {
		panic("invalid aging spec: " + errs[0].Error())
	}
	return s
}
