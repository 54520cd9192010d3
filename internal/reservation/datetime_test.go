package reservation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2028-03-18T00:00:00", time.Date(2028, 3, 18, 0, 0, 0, 0, time.UTC)},
		{"2028-03-18T09:15:30.250", time.Date(2028, 3, 18, 9, 15, 30, 250_000_000, time.UTC)},
		{"2028-03-18T09:15:30Z", time.Date(2028, 3, 18, 9, 15, 30, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDateTime(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got.Time), "%s: got %s", tt.in, got)
	}

	_, err := ParseDateTime("18/03/2028")
	assert.Error(t, err)
}

func TestDateTime_JSONRoundTrip(t *testing.T) {
	var v struct {
		At  DateTime  `json:"at"`
		Opt *DateTime `json:"opt"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at":"2028-03-18T00:00:00","opt":null}`), &v))
	assert.Nil(t, v.Opt)

	out, err := json.Marshal(v.At)
	require.NoError(t, err)
	assert.Equal(t, `"2028-03-18T00:00:00"`, string(out))
}
