package featurereg_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/featurereg/pkg/featurereg"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  featurereg.ValueType
	}{
		{"int", 42, featurereg.TypeInt},
		{"int64", int64(42), featurereg.TypeInt},
		{"float64", 4.2, featurereg.TypeFloat},
		{"float32", float32(4.2), featurereg.TypeFloat},
		{"string", "spend", featurereg.TypeString},
		{"bool", true, featurereg.TypeBool},
		{"time", time.Now(), featurereg.TypeTimestamp},
		{"nil", nil, featurereg.TypeUnknown},
		{"slice", []int{1}, featurereg.TypeUnknown},
		{"map", map[string]any{}, featurereg.TypeUnknown},
		{"int32", int32(1), featurereg.TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, featurereg.TypeOf(tt.value))
		})
	}
}

func TestParseValueType_RoundTrip(t *testing.T) {
	for _, vt := range []featurereg.ValueType{
		featurereg.TypeInt,
		featurereg.TypeFloat,
		featurereg.TypeString,
		featurereg.TypeBool,
		featurereg.TypeTimestamp,
	} {
		parsed, err := featurereg.ParseValueType(vt.String())
		require.NoError(t, err)
		assert.Equal(t, vt, parsed)
		assert.True(t, vt.Valid())
	}
}

func TestParseValueType_Unknown(t *testing.T) {
	_, err := featurereg.ParseValueType("decimal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decimal")

	assert.False(t, featurereg.TypeUnknown.Valid())
	assert.Equal(t, "unknown", featurereg.TypeUnknown.String())
}

func TestValueType_TextMarshaling(t *testing.T) {
	text, err := featurereg.TypeFloat.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "float", string(text))

	var vt featurereg.ValueType
	require.NoError(t, vt.UnmarshalText([]byte("timestamp")))
	assert.Equal(t, featurereg.TypeTimestamp, vt)

	require.Error(t, vt.UnmarshalText([]byte("tensor")))

	_, err = featurereg.TypeUnknown.MarshalText()
	require.Error(t, err)
}
