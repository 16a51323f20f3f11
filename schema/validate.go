package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/qlap/traingate/core"
)

// Date layouts accepted on input. Output always uses RFC 3339.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// Load validates payload against the schema with the default
// unknown-field policy (reject) and returns the coerced structure.
// All violations for the payload are collected and returned together;
// validation never stops at the first failure.
func (s Schema) Load(payload map[string]any) (map[string]any, []core.FieldViolation) {
	return s.LoadWith(payload, UnknownReject)
}

// LoadWith is Load with an explicit unknown-field policy.
func (s Schema) LoadWith(payload map[string]any, policy UnknownPolicy) (map[string]any, []core.FieldViolation) {
	out, violations := s.load(payload, policy, "")
	if len(violations) > 0 {
		return nil, violations
	}
	return out, nil
}

func (s Schema) load(payload map[string]any, policy UnknownPolicy, prefix string) (map[string]any, []core.FieldViolation) {
	out := make(map[string]any, len(s))
	var violations []core.FieldViolation

	for name, field := range s {
		path := joinPath(prefix, name)
		raw, present := payload[name]

		if field.ReadOnly {
			// Read-only fields are excluded from input acceptance and
			// treated as undeclared when the client sends them.
			if present && policy == UnknownReject {
				violations = append(violations, violation(path, core.KindUnknownField, "field is read-only"))
			}
			continue
		}

		if !present || raw == nil {
			if field.Required {
				violations = append(violations, violation(path, core.KindMissingField, "required field is missing"))
			}
			continue
		}

		value, vs := coerce(path, field, raw, policy)
		if len(vs) > 0 {
			violations = append(violations, vs...)
			continue
		}
		out[name] = value
	}

	for name := range payload {
		field, declared := s[name]
		if declared && !field.ReadOnly {
			continue
		}
		if declared && field.ReadOnly {
			continue // already reported above
		}
		if policy == UnknownReject {
			violations = append(violations, violation(joinPath(prefix, name), core.KindUnknownField, "field is not declared in the schema"))
		}
	}

	return out, violations
}

// coerce converts a raw value to the field's declared type and applies
// format constraints. It returns the coerced value or the violations found.
func coerce(path string, field Field, raw any, policy UnknownPolicy) (any, []core.FieldViolation) {
	switch field.Type {
	case String:
		v, ok := raw.(string)
		if !ok {
			return nil, typeMismatch(path, field, raw)
		}
		return v, checkString(path, field, v)

	case Integer:
		v, ok := toInt64(raw)
		if !ok {
			return nil, typeMismatch(path, field, raw)
		}
		return v, checkRange(path, field, float64(v))

	case Boolean:
		v, ok := raw.(bool)
		if !ok {
			return nil, typeMismatch(path, field, raw)
		}
		return v, nil

	case Date:
		str, ok := raw.(string)
		if !ok {
			return nil, typeMismatch(path, field, raw)
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, str); err == nil {
				return t, nil
			}
		}
		return nil, typeMismatch(path, field, raw)

	case Decimal:
		d, ok := toDecimal(raw)
		if !ok {
			return nil, typeMismatch(path, field, raw)
		}
		return d, checkDecimalRange(path, field, d)

	case Object:
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, typeMismatch(path, field, raw)
		}
		nested, vs := field.Fields.load(m, policy, path)
		if len(vs) > 0 {
			return nil, vs
		}
		return nested, nil

	case List:
		items, ok := raw.([]any)
		if !ok {
			return nil, typeMismatch(path, field, raw)
		}
		var violations []core.FieldViolation
		out := make([]any, 0, len(items))
		for i, item := range items {
			elemPath := fmt.Sprintf("%s[%d]", path, i)
			v, vs := coerce(elemPath, *field.Elem, item, policy)
			if len(vs) > 0 {
				violations = append(violations, vs...)
				continue
			}
			out = append(out, v)
		}
		if len(violations) > 0 {
			return nil, violations
		}
		return out, nil

	default:
		return nil, []core.FieldViolation{violation(path, core.KindTypeMismatch, "field has an unknown declared type")}
	}
}

func checkString(path string, field Field, v string) []core.FieldViolation {
	var violations []core.FieldViolation

	n := utf8.RuneCountInString(v)
	if field.MinLen > 0 && n < field.MinLen {
		violations = append(violations, violation(path, core.KindFormatViolation,
			fmt.Sprintf("length must be at least %d", field.MinLen)))
	}
	if field.MaxLen > 0 && n > field.MaxLen {
		violations = append(violations, violation(path, core.KindFormatViolation,
			fmt.Sprintf("length must be at most %d", field.MaxLen)))
	}
	if len(field.Enum) > 0 && !contains(field.Enum, v) {
		violations = append(violations, violation(path, core.KindFormatViolation, "value is not one of the allowed values"))
	}
	if field.Pattern != nil && !field.Pattern.MatchString(v) {
		violations = append(violations, violation(path, core.KindFormatViolation, "value does not match the expected pattern"))
	}
	return violations
}

func checkRange(path string, field Field, v float64) []core.FieldViolation {
	var violations []core.FieldViolation
	if field.Min != nil && v < *field.Min {
		violations = append(violations, violation(path, core.KindFormatViolation,
			fmt.Sprintf("must be at least %v", *field.Min)))
	}
	if field.Max != nil && v > *field.Max {
		violations = append(violations, violation(path, core.KindFormatViolation,
			fmt.Sprintf("must be at most %v", *field.Max)))
	}
	return violations
}

// checkDecimalRange compares in decimal space, so bounds stay exact for
// values beyond float64's mantissa.
func checkDecimalRange(path string, field Field, d decimal.Decimal) []core.FieldViolation {
	var violations []core.FieldViolation
	if field.Min != nil && d.LessThan(decimal.NewFromFloat(*field.Min)) {
		violations = append(violations, violation(path, core.KindFormatViolation,
			fmt.Sprintf("must be at least %v", *field.Min)))
	}
	if field.Max != nil && d.GreaterThan(decimal.NewFromFloat(*field.Max)) {
		violations = append(violations, violation(path, core.KindFormatViolation,
			fmt.Sprintf("must be at most %v", *field.Max)))
	}
	return violations
}

// toInt64 coerces the representations an integer may arrive in: JSON
// numbers decode as float64, re-loaded dumps carry int64, and clients
// commonly send numeric strings.
func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func toDecimal(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(v)
		return d, err == nil
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	default:
		return decimal.Decimal{}, false
	}
}

func typeMismatch(path string, field Field, raw any) []core.FieldViolation {
	return []core.FieldViolation{violation(path, core.KindTypeMismatch,
		fmt.Sprintf("cannot interpret %T as %s", raw, field.Type))}
}

func violation(path string, kind core.Kind, message string) core.FieldViolation {
	return core.FieldViolation{Field: path, Kind: kind, Message: message}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
