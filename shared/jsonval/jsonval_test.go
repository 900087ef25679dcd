package jsonval_test

import (
	"encoding/json"
	"roamalto/shared/jsonval"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, v jsonval.Value)
	}{
		{
			name:  "object with nested utm",
			input: `{"utm":{"source":"fb","campaign":"summer"},"referrer":"https://fb.com"}`,
			check: func(t *testing.T, v jsonval.Value) {
				assert.True(t, v.IsObject())

				utm, ok := v.Field("utm")
				require.True(t, ok)
				assert.True(t, utm.IsObject())

				source, ok := utm.Field("source")
				require.True(t, ok)
				assert.Equal(t, "fb", source.Interface())
			},
		},
		{
			name:  "scalar string",
			input: `"hello"`,
			check: func(t *testing.T, v jsonval.Value) {
				assert.False(t, v.IsObject())
				assert.Equal(t, "hello", v.Interface())
			},
		},
		{
			name:  "explicit null",
			input: `null`,
			check: func(t *testing.T, v jsonval.Value) {
				assert.True(t, v.IsSet())
				assert.True(t, v.IsNull())
			},
		},
		{
			name:  "array of mixed scalars",
			input: `[1,"two",true,null]`,
			check: func(t *testing.T, v jsonval.Value) {
				arr, ok := v.Interface().([]any)
				require.True(t, ok)
				assert.Len(t, arr, 4)
				assert.Equal(t, float64(1), arr[0])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v jsonval.Value
			require.NoError(t, json.Unmarshal([]byte(tt.input), &v))
			tt.check(t, v)
		})
	}
}

func TestFrom_RejectsUnsupportedTypes(t *testing.T) {
	_, err := jsonval.From(map[string]any{"ch": make(chan int)})
	assert.ErrorIs(t, err, jsonval.ErrUnsupportedType)
}

func TestFrom_NormalizesInts(t *testing.T) {
	v, err := jsonval.From(map[string]any{"amount": 1200})
	require.NoError(t, err)

	amount, ok := v.Field("amount")
	require.True(t, ok)
	assert.Equal(t, float64(1200), amount.Interface())
}

func TestValue_SQLRoundTrip(t *testing.T) {
	var v jsonval.Value
	require.NoError(t, json.Unmarshal([]byte(`{"source":"ig"}`), &v))

	driverValue, err := v.Value()
	require.NoError(t, err)
	require.NotNil(t, driverValue)

	var scanned jsonval.Value
	require.NoError(t, scanned.Scan(driverValue))
	assert.True(t, scanned.IsObject())

	source, ok := scanned.Field("source")
	require.True(t, ok)
	assert.Equal(t, "ig", source.Interface())
}

func TestValue_AbsentStoresNull(t *testing.T) {
	var v jsonval.Value

	driverValue, err := v.Value()
	require.NoError(t, err)
	assert.Nil(t, driverValue)

	var scanned jsonval.Value
	require.NoError(t, scanned.Scan(nil))
	assert.False(t, scanned.IsSet())
}
