package compare

import (
	"encoding/json"
	"reflect"
	"sort"
)

// Mode selects the comparison semantics for a problem.
type Mode int

const (
	// Exact is deep structural equality after a JSON round-trip.
	Exact Mode = iota
	// Smart additionally accepts order-independent array results; it
	// is enabled per an explicit allow-list of problem identities.
	Smart
)

// Compare reports whether actual matches expected under the given
// mode. Smart mode tries exact equality first and only then sorts
// array shapes into a canonical order and re-compares; non-array
// values that fail exact comparison fail under smart mode too.
func Compare(actual, expected any, mode Mode) bool {
	a := roundTrip(actual)
	e := roundTrip(expected)
	if reflect.DeepEqual(a, e) {
		return true
	}
	if mode != Smart {
		return false
	}

	aArr, aOk := a.([]any)
	eArr, eOk := e.([]any)
	if !aOk || !eOk {
		return false
	}
	return reflect.DeepEqual(normalizeArray(aArr), normalizeArray(eArr))
}

// roundTrip forces both sides into encoding/json's canonical value
// types so []int and []any{float64...} compare as the same shape.
func roundTrip(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

// normalizeArray sorts a flat array directly; for an array of arrays
// it sorts every inner array first and then orders the outer array by
// the serialized form of its elements.
func normalizeArray(arr []any) []any {
	out := make([]any, len(arr))
	copy(out, arr)
	for i, elem := range out {
		if inner, ok := elem.([]any); ok {
			sorted := make([]any, len(inner))
			copy(sorted, inner)
			sortValues(sorted)
			out[i] = sorted
		}
	}
	sortValues(out)
	return out
}

func sortValues(vals []any) {
	sort.SliceStable(vals, func(i, j int) bool {
		return lessValue(vals[i], vals[j])
	})
}

func lessValue(a, b any) bool {
	an, aOk := a.(float64)
	bn, bOk := b.(float64)
	if aOk && bOk {
		return an < bn
	}
	as, aOk := a.(string)
	bs, bOk := b.(string)
	if aOk && bOk {
		return as < bs
	}
	return serialized(a) < serialized(b)
}

func serialized(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}
