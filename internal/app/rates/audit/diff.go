package audit

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"unicode"
)

// ChangeKind classifies one field-level change.
type ChangeKind string

const (
	// ChangeAdded means the field is present only in the new snapshot.
	ChangeAdded ChangeKind = "added"
	// ChangeRemoved means the field is present only in the previous snapshot.
	ChangeRemoved ChangeKind = "removed"
	// ChangeModified means the field is present in both with different values.
	ChangeModified ChangeKind = "modified"
)

// FieldChange describes one changed field between two snapshots. Field is the
// raw snapshot key; Label is the human-readable form for display surfaces.
type FieldChange struct {
	Field    string      `json:"field"`
	Label    string      `json:"label"`
	Kind     ChangeKind  `json:"kind"`
	Previous interface{} `json:"previous,omitempty"`
	New      interface{} `json:"new,omitempty"`
}

// Diff compares two snapshots field by field over the union of their keys and
// returns the changes sorted by field name. Fields with structurally equal
// values are omitted. Either side may be nil (creation has no previous
// snapshot, deletion no new one).
func Diff(prev, next *Snapshot) []FieldChange {
	prevFields := prev.Fields()
	nextFields := next.Fields()

	keys := make(map[string]struct{}, len(prevFields)+len(nextFields))
	for k := range prevFields {
		keys[k] = struct{}{}
	}
	for k := range nextFields {
		keys[k] = struct{}{}
	}

	changes := make([]FieldChange, 0, len(keys))
	for k := range keys {
		prevVal, inPrev := prevFields[k]
		nextVal, inNext := nextFields[k]

		switch {
		case inPrev && !inNext:
			changes = append(changes, FieldChange{
				Field:    k,
				Label:    FieldLabel(k),
				Kind:     ChangeRemoved,
				Previous: prevVal,
			})
		case !inPrev && inNext:
			changes = append(changes, FieldChange{
				Field: k,
				Label: FieldLabel(k),
				Kind:  ChangeAdded,
				New:   nextVal,
			})
		case !structurallyEqual(prevVal, nextVal):
			changes = append(changes, FieldChange{
				Field:    k,
				Label:    FieldLabel(k),
				Kind:     ChangeModified,
				Previous: prevVal,
				New:      nextVal,
			})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Field < changes[j].Field
	})
	return changes
}

// structurallyEqual compares values by canonical JSON encoding, so nested
// maps and values decoded from stored snapshots compare the same as values
// built in memory (int64 vs float64, map ordering).
func structurallyEqual(a, b interface{}) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}

// FieldLabel turns a snapshot field key into a display label:
// "rateAmount" becomes "Rate Amount", "closedForArrival" becomes
// "Closed For Arrival". Underscores are treated as word breaks too.
func FieldLabel(field string) string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for _, r := range field {
		switch {
		case r == '_' || r == ' ':
			flush()
		case unicode.IsUpper(r) || unicode.IsDigit(r) && !lastIsDigit(&current):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func lastIsDigit(b *strings.Builder) bool {
	s := b.String()
	if s == "" {
		return false
	}
	return unicode.IsDigit(rune(s[len(s)-1]))
}
