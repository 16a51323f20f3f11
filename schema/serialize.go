package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dump restricts a domain object to the declared output fields, applying
// field-level transforms (dates become ISO 8601 strings, decimals become
// strings). Write-only fields are always excluded. Keys absent from the
// object are omitted from the output.
func (s Schema) Dump(obj map[string]any) map[string]any {
	out := make(map[string]any, len(s))

	for name, field := range s {
		if field.WriteOnly {
			continue
		}
		raw, present := obj[name]
		if !present || raw == nil {
			continue
		}
		out[name] = dumpValue(field, raw)
	}

	return out
}

func dumpValue(field Field, raw any) any {
	switch field.Type {
	case Date:
		if t, ok := raw.(time.Time); ok {
			return t.UTC().Format(time.RFC3339)
		}
		return raw

	case Decimal:
		if d, ok := raw.(decimal.Decimal); ok {
			return d.String()
		}
		return raw

	case Object:
		if m, ok := raw.(map[string]any); ok {
			return field.Fields.Dump(m)
		}
		return raw

	case List:
		if items, ok := raw.([]any); ok {
			out := make([]any, 0, len(items))
			for _, item := range items {
				out = append(out, dumpValue(*field.Elem, item))
			}
			return out
		}
		return raw

	default:
		return raw
	}
}
