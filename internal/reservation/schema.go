package reservation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed reservation.schema.json
var schemaJSON []byte

const (
	dateTimeFormat = "seaware-date-time"
	rootPath       = "(root)"
)

// Substructures whose keys are never rewritten: pass-through payloads, and
// maps keyed by data labels (currencies, cost categories).
var opaqueFields = map[string]bool{
	"financialOverview": true,

	"payments":      true,
	"invoices":      true,
	"groupBooking":  true,
	"packages":      true,
	"flights":       true,
	"cancellations": true,
	"shipRooms":     true,
	"excursions":    true,
}

var (
	compiledSchema *gojsonschema.Schema
	// folded key -> canonical camelCase property name
	canonicalKeys map[string]string
)

type dateTimeChecker struct{}

func (dateTimeChecker) IsFormat(input interface{}) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	_, err := ParseDateTime(s)
	return err == nil
}

func init() {
	gojsonschema.FormatCheckers.Add(dateTimeFormat, dateTimeChecker{})

	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("reservation: embedded schema is invalid: %v", err))
	}
	compiledSchema = s

	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		panic(fmt.Sprintf("reservation: embedded schema is not JSON: %v", err))
	}
	canonicalKeys = make(map[string]string)
	collectProperties(doc, canonicalKeys)
}

func collectProperties(node any, into map[string]string) {
	switch n := node.(type) {
	case map[string]any:
		if props, ok := n["properties"].(map[string]any); ok {
			for name := range props {
				into[foldKey(name)] = name
			}
		}
		for _, v := range n {
			collectProperties(v, into)
		}
	case []any:
		for _, v := range n {
			collectProperties(v, into)
		}
	}
}

// foldKey makes start_date_time, startDateTime and StartDateTime collide.
func foldKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(k, "_", ""))
}

// Parse validates a JSON reservation document and decodes it. Keys may use
// either the Seaware camelCase names or their snake_case equivalents.
func Parse(data []byte) (*Reservation, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, invalidJSON(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, invalidJSON(errors.New("unexpected data after top-level value"))
	}
	return decode(doc)
}

// FromMap is Parse for a document that has already been decoded, e.g. by a
// transport layer or a hand-written test fixture.
func FromMap(doc map[string]any) (*Reservation, error) {
	if doc == nil {
		return nil, &ValidationError{Fields: []FieldError{{Path: rootPath, Message: "document is empty"}}}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, invalidJSON(err)
	}
	return Parse(raw)
}

func decode(doc any) (*Reservation, error) {
	normalized, err := json.Marshal(normalizeKeys(doc))
	if err != nil {
		return nil, invalidJSON(err)
	}

	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(normalized))
	if err != nil {
		return nil, invalidJSON(err)
	}
	if !result.Valid() {
		return nil, validationError(result.Errors())
	}

	var res Reservation
	if err := json.Unmarshal(normalized, &res); err != nil {
		// schema and model disagree (12.0 or 1e30 for an int64 id)
		return nil, decodeError(normalized, err)
	}
	return &res, nil
}

func decodeError(data []byte, err error) *ValidationError {
	var terr *json.UnmarshalTypeError
	if !errors.As(err, &terr) {
		return invalidJSON(err)
	}
	path, ok := pathAtOffset(data, terr.Offset)
	if !ok {
		path = terr.Field
	}
	if path == "" {
		path = rootPath
	}
	return &ValidationError{Fields: []FieldError{{
		Path:    path,
		Message: fmt.Sprintf("%s cannot be decoded as %s", terr.Value, terr.Type),
	}}}
}

type pathFrame struct {
	array   bool
	wantKey bool
	key     string
	index   int
}

// pathAtOffset returns the dotted path of the first scalar ending at or
// after offset.
func pathAtOffset(data []byte, offset int64) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var stack []pathFrame
	enter := func() {
		if n := len(stack); n > 0 && stack[n-1].array {
			stack[n-1].index++
		}
	}
	leave := func() {
		if n := len(stack); n > 0 && !stack[n-1].array {
			stack[n-1].wantKey = true
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return "", false
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				enter()
				stack = append(stack, pathFrame{array: d == '[', wantKey: d == '{', index: -1})
			case '}', ']':
				stack = stack[:len(stack)-1]
				leave()
			}
			continue
		}
		if n := len(stack); n > 0 && stack[n-1].wantKey {
			stack[n-1].key, _ = tok.(string)
			stack[n-1].wantKey = false
			continue
		}
		enter()
		if dec.InputOffset() >= offset {
			parts := make([]string, 0, len(stack))
			for _, f := range stack {
				if f.array {
					parts = append(parts, strconv.Itoa(f.index))
				} else {
					parts = append(parts, f.key)
				}
			}
			return strings.Join(parts, "."), true
		}
		leave()
	}
}

func normalizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make(map[string]any, len(t))
		// canonical spellings first so they win over aliases
		for _, k := range keys {
			if canonicalKeys[foldKey(k)] == k {
				out[k] = normalizeValue(k, t[k])
			}
		}
		for _, k := range keys {
			name := k
			if canonical, ok := canonicalKeys[foldKey(k)]; ok {
				name = canonical
			}
			if _, taken := out[name]; taken {
				continue
			}
			out[name] = normalizeValue(name, t[k])
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalizeKeys(t[i])
		}
		return out
	default:
		return v
	}
}

func normalizeValue(name string, v any) any {
	if opaqueFields[name] {
		return v
	}
	return normalizeKeys(v)
}

func validationError(errs []gojsonschema.ResultError) *ValidationError {
	fields := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		path := e.Field()
		if e.Type() == "required" {
			if prop, ok := e.Details()["property"].(string); ok {
				path = joinPath(path, prop)
			}
		}
		fields = append(fields, FieldError{Path: path, Message: e.Description()})
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Path < fields[j].Path
	})
	return &ValidationError{Fields: fields}
}

func joinPath(parent, child string) string {
	if parent == "" || parent == rootPath {
		return child
	}
	if strings.HasSuffix(parent, "."+child) {
		return parent
	}
	return parent + "." + child
}

func invalidJSON(err error) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Path: rootPath, Message: err.Error()}}}
}
