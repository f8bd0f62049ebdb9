package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-02-29"`), &d))
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 29, d.Day())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-29"`, string(out))
}

func TestDate_InvalidInput(t *testing.T) {
	tests := []string{`"2024-13-01"`, `"01/02/2024"`, `12`, `""`}
	for _, in := range tests {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(in), &d), in)
	}
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2023, 7, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2023-07-14", d.String())

	require.NoError(t, d.Scan("2023-07-15"))
	assert.Equal(t, "2023-07-15", d.String())

	assert.Error(t, d.Scan(42))
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		wantErr  bool
	}{
		{in: "2024-05-01T10:30:00", expected: "2024-05-01T10:30:00"},
		{in: "2024-05-01T10:30:00Z", expected: "2024-05-01T10:30:00"},
		{in: "2024-05-01T12:30:00+02:00", expected: "2024-05-01T10:30:00"},
		{in: "2024-05-01", wantErr: true},
		{in: "yesterday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			dt, err := ParseDateTime(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dt.String())
		})
	}
}
