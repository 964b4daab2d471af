package types

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRowConvertsTemporalAndDecimal(t *testing.T) {
	criado := time.Date(2024, 5, 10, 13, 45, 0, 0, time.UTC)
	row := RowMap{
		"id":          int64(7),
		"criado_em":   criado,
		"valor_total": decimal.RequireFromString("149.90"),
		"nome":        "Lacre void prata",
		"nulo":        nil,
	}

	got := FormatRow(row)

	assert.Equal(t, "2024-05-10T13:45:00Z", got["criado_em"])
	assert.InDelta(t, 149.90, got["valor_total"], 0.0001)
	assert.Equal(t, "Lacre void prata", got["nome"])
	assert.Equal(t, int64(7), got["id"])
	assert.Nil(t, got["nulo"])
}

func TestFormatRowNilPointersBecomeNull(t *testing.T) {
	var ts *time.Time
	var dec *decimal.Decimal
	got := FormatRow(RowMap{"atualizado_em": ts, "valor_frete": dec})

	assert.Nil(t, got["atualizado_em"])
	assert.Nil(t, got["valor_frete"])
}

func TestFormatRowByteSlices(t *testing.T) {
	got := FormatRow(RowMap{
		"valor":       []byte("12.5"),
		"valor_frete": []byte("12.50"),
		"texto":       []byte("abc"),
	})
	assert.InDelta(t, 12.5, got["valor"], 0.0001)
	assert.InDelta(t, 12.5, got["valor_frete"], 0.0001)
	assert.Equal(t, "abc", got["texto"])
}

func TestFormatRowKeepsNonCanonicalNumericTextAsString(t *testing.T) {
	got := FormatRow(RowMap{
		"codigo":     []byte("007"),
		"referencia": []byte("1e3"),
		"negativo":   []byte("-3.25"),
	})
	assert.Equal(t, "007", got["codigo"])
	assert.Equal(t, "1e3", got["referencia"])
	assert.InDelta(t, -3.25, got["negativo"], 0.0001)
}

func TestFormatRowIdempotent(t *testing.T) {
	row := RowMap{
		"criado_em":   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		"valor_total": decimal.RequireFromString("10"),
	}
	once := FormatRow(row)
	twice := FormatRow(once)
	require.Equal(t, once, twice)
}

func TestFormatRowNil(t *testing.T) {
	assert.Nil(t, FormatRow(nil))
	assert.Empty(t, FormatRows(nil))
}
