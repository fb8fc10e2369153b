package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    float64
		wantErr bool
	}{
		{name: "vazio vale zero", value: "", want: 0},
		{name: "espaços valem zero", value: "  ", want: 0},
		{name: "decimal", value: "12.34", want: 12.34},
		{name: "inválido", value: "abc", wantErr: true},
		{name: "NaN é rejeitado", value: "NaN", wantErr: true},
		{name: "infinito é rejeitado", value: "-Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFloat(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInt(t *testing.T) {
	got, err := ParseInt("1500")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), got)

	got, err = ParseInt("12.0")
	require.NoError(t, err)
	assert.Equal(t, int64(12), got)

	got, err = ParseInt("")
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	_, err = ParseInt("x")
	assert.Error(t, err)

	_, err = ParseInt("+Inf")
	assert.Error(t, err)
}

func TestLookbackWindow(t *testing.T) {
	now := time.Date(2024, 3, 31, 15, 45, 0, 0, time.UTC)

	since, until := LookbackWindow(now, 30)

	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), until)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), since)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *date)

	date, err = ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, date)

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestGenerateAccessHash(t *testing.T) {
	hash, err := GenerateAccessHash()

	require.NoError(t, err)
	assert.Len(t, hash, AccessHashLength)
	assert.Regexp(t, `^[a-z0-9]+$`, hash)
}

func TestPrettyJson(t *testing.T) {
	type report struct {
		RunID   string   `json:"run_id"`
		Clients []string `json:"clients"`
	}

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "bytes já serializados", in: []byte(`{"a":1}`), want: "{\n\t\"a\": 1\n}"},
		{name: "struct", in: &report{RunID: "r1", Clients: []string{"c1"}}, want: "{\n\t\"run_id\": \"r1\",\n\t\"clients\": [\n\t\t\"c1\"\n\t]\n}"},
		{name: "bytes inválidos voltam como vieram", in: []byte(`não é json`), want: "não é json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			require.NotPanics(t, func() { got = PrettyJson(tt.in) })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompactJson(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CompactJson(map[string]int{"a": 1}))
}
