package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var payload struct {
		BirthDate Date `json:"birth_date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"birth_date":"1990-10-30"}`), &payload))
	assert.Equal(t, NewDate(1990, time.October, 30), payload.BirthDate)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"birth_date":"1990-10-30"}`, string(out))
}

func TestDate_UnmarshalJSON_Rejects(t *testing.T) {
	cases := []string{`"30/10/1990"`, `19901030`, `"1990-13-01"`}
	for _, c := range cases {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(c), &d), c)
	}
}

func TestDate_NullIsZero(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestDate_Scan(t *testing.T) {
	want := NewDate(2001, time.February, 3)
	tests := []struct {
		name string
		src  any
	}{
		{"time", time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC)},
		{"time with offset", time.Date(2001, 2, 3, 0, 0, 0, 0, time.FixedZone("x", 3600))},
		{"string", "2001-02-03"},
		{"sqlite text", "2001-02-03 00:00:00+00:00"},
		{"bytes", []byte("2001-02-03")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tc.src))
			assert.Equal(t, want, d)
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}

func TestDate_Value(t *testing.T) {
	v, err := NewDate(1990, time.October, 30).Value()
	require.NoError(t, err)
	assert.Equal(t, "1990-10-30", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
