// Package fieldset classifies arbitrary JSON input against the canonical
// field set of an entity and validates it for create and partial-update
// flows. It is a pure package: no I/O, no storage access.
package fieldset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Set is the ordered list of canonical field names an entity record may
// contain. Sets are defined once per entity kind and never mutated.
type Set []string

// Contains reports whether name is part of the set.
func (s Set) Contains(name string) bool {
	for _, f := range s {
		if f == name {
			return true
		}
	}
	return false
}

// Record is a decoded JSON object that remembers the document order of its
// top-level keys. Order matters for reporting: extra fields are listed in
// input order, missing fields in Set order.
type Record struct {
	Keys   []string
	Values map[string]any
}

// DecodeObject parses data as a single JSON object, preserving key order.
// Anything that is not a JSON object is an error.
func DecodeObject(data []byte) (*Record, error) {
	values := map[string]any{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("decoding object: %w", err)
		}
	}

	keys, err := objectKeys(data)
	if err != nil {
		return nil, err
	}

	return &Record{Keys: keys, Values: values}, nil
}

// objectKeys walks the token stream to recover top-level keys in document
// order, which plain map unmarshalling loses.
func objectKeys(data []byte) ([]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []string{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, errors.New("decoding object: not a JSON object")
	}

	keys := []string{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("decoding object: malformed key")
		}
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// skipValue consumes one JSON value from dec, including nested containers.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	nested := 1
	for nested > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				nested++
			case '}', ']':
				nested--
			}
		}
	}
	return nil
}

// Outcome is the three-way classification of input keys against a Set.
//
// Matched holds every input key (not filtered to the Set), Extra the input
// keys outside the Set in input order, Missing the Set keys absent from the
// input in Set order. Extra is always disjoint from the Set.
type Outcome struct {
	Matched map[string]any
	Extra   []string
	Missing []string
}

// Split partitions the record's keys against fields. Pure set arithmetic,
// no validation.
func Split(rec *Record, fields Set) Outcome {
	matched := make(map[string]any, len(rec.Values))
	for k, v := range rec.Values {
		matched[k] = v
	}

	extra := []string{}
	for _, k := range rec.Keys {
		if !fields.Contains(k) {
			extra = append(extra, k)
		}
	}

	missing := []string{}
	for _, f := range fields {
		if _, ok := rec.Values[f]; !ok {
			missing = append(missing, f)
		}
	}

	return Outcome{Matched: matched, Extra: extra, Missing: missing}
}

// trimmedValues extracts the string-typed values of source, trimmed of
// leading and trailing whitespace. Non-string values are skipped: trimming
// only makes sense for strings.
func trimmedValues(rec *Record, source map[string]any) map[string]string {
	result := make(map[string]string)
	for _, k := range rec.Keys {
		if s, ok := source[k].(string); ok {
			result[k] = strings.TrimSpace(s)
		}
	}
	return result
}

// blankKeys lists, in input order, the keys of matched whose values count
// as blank: empty or whitespace-only strings, null, zero numbers and false.
// Values of any other shape pass.
func blankKeys(rec *Record, matched map[string]any) []string {
	blank := []string{}
	for _, k := range rec.Keys {
		v, ok := matched[k]
		if !ok {
			continue
		}
		if isBlank(v) {
			blank = append(blank, k)
		}
	}
	return blank
}

func isBlank(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	case float64:
		return value == 0
	case bool:
		return !value
	case json.Number:
		return value.String() == "0"
	default:
		return false
	}
}

// Validation messages. Every offending field is reported in one pass; a
// response never names just the first problem.
const (
	msgUnexpected      = "Unexpected field"
	msgMissing         = "Field required but missing"
	msgBlank           = "Value required for field"
	msgNothingToUpdate = "Nothing to update"
)

func addErrors(target []FieldError, names []string, message string) []FieldError {
	if len(names) > 0 {
		target = append(target, FieldError{Message: message, Names: names})
	}
	return target
}

// ParseRecord validates rec for entity creation: every field of the set
// must be present and non-blank after trimming, and nothing outside the set
// is allowed. On success the returned record holds the trimmed string
// fields.
func ParseRecord(rec *Record, fields Set) Result[map[string]string] {
	out := Split(rec, fields)
	data := trimmedValues(rec, out.Matched)
	blank := blankKeys(rec, out.Matched)
	// Could add more validations here, e.g. for email format or password
	// strength.

	var errs []FieldError
	errs = addErrors(errs, out.Extra, msgUnexpected)
	errs = addErrors(errs, out.Missing, msgMissing)
	errs = addErrors(errs, blank, msgBlank)
	if len(errs) > 0 {
		return Errors[map[string]string](errs)
	}
	return OK(data)
}

// ParsePatch validates rec for a partial update: missing fields are fine,
// but supplied fields must be non-blank, unknown fields are rejected, and
// an empty patch is a single "Nothing to update" error. On success the
// returned record holds only the fields actually supplied, trimmed.
func ParsePatch(rec *Record, fields Set) Result[map[string]string] {
	out := Split(rec, fields)
	data := trimmedValues(rec, out.Matched)
	blank := blankKeys(rec, out.Matched)

	var errs []FieldError
	errs = addErrors(errs, out.Extra, msgUnexpected)
	errs = addErrors(errs, blank, msgBlank)
	if len(out.Matched) == 0 {
		errs = append(errs, FieldError{Message: msgNothingToUpdate})
	}
	if len(errs) > 0 {
		return Errors[map[string]string](errs)
	}
	return OK(data)
}
