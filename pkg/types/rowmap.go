package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// RowMap is a raw database row keyed by column name.
type RowMap = map[string]any

// FormatRow converts raw row values into JSON-encodable equivalents:
// timestamps become RFC 3339 strings, decimal values become float64, []byte
// becomes float64 when it holds canonical decimal text and string otherwise.
// Unknown types pass through unchanged. The function is total and idempotent.
func FormatRow(row RowMap) RowMap {
	if row == nil {
		return nil
	}
	out := make(RowMap, len(row))
	for key, value := range row {
		out[key] = formatValue(value)
	}
	return out
}

// FormatRows applies FormatRow to each row.
func FormatRows(rows []RowMap) []RowMap {
	out := make([]RowMap, len(rows))
	for i, row := range rows {
		out[i] = FormatRow(row)
	}
	return out
}

func formatValue(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return v.Format(time.RFC3339)
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.Format(time.RFC3339)
	case decimal.Decimal:
		f, _ := v.Float64()
		return f
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		f, _ := v.Float64()
		return f
	case decimal.NullDecimal:
		if !v.Valid {
			return nil
		}
		f, _ := v.Decimal.Float64()
		return f
	case []byte:
		// Numeric columns arrive as []byte from the pg wire format.
		// Coerce only canonical decimal text so values like "007" or
		// "1e3" stay strings.
		s := string(v)
		if d, err := decimal.NewFromString(s); err == nil && d.String() == s {
			f, _ := d.Float64()
			return f
		}
		return s
	default:
		return value
	}
}
