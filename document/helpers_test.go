package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"json", FORMAT_JSON, false},
		{"JSON", FORMAT_JSON, false},
		{"", FORMAT_JSON, false},
		{"yaml", FORMAT_YAML, false},
		{" Yaml ", FORMAT_YAML, false},
		{"yml", FORMAT_YAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), "unsupported output format")
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEncode(t *testing.T) {
	t.Run("json is compact", func(t *testing.T) {
		out, err := Encode(sample{Name: "DOE", Count: 2}, FORMAT_JSON)
		require.NoError(t, err)
		require.Equal(t, `{"name":"DOE","count":2}`, string(out))
	})

	t.Run("yaml keeps field order", func(t *testing.T) {
		out, err := Encode(sample{Name: "DOE", Count: 2}, FORMAT_YAML)
		require.NoError(t, err)
		require.Equal(t, "name: DOE\ncount: 2\n", string(out))
	})

	t.Run("unknown format fails", func(t *testing.T) {
		_, err := Encode(sample{}, OutputFormat("toml"))
		require.Error(t, err)
	})

	t.Run("content types", func(t *testing.T) {
		require.Equal(t, "application/json", FORMAT_JSON.ContentType())
		require.Equal(t, "application/yaml", FORMAT_YAML.ContentType())
	})
}

func TestDecodePayload(t *testing.T) {
	t.Run("utf-8 passes through", func(t *testing.T) {
		got, err := DecodePayload([]byte("DCSMÜLLER"))
		require.NoError(t, err)
		require.Equal(t, "DCSMÜLLER", got)
	})

	t.Run("latin-1 is converted", func(t *testing.T) {
		got, err := DecodePayload([]byte{'D', 'C', 'S', 'M', 0xDC, 'L', 'L', 'E', 'R'})
		require.NoError(t, err)
		require.Equal(t, "DCSMÜLLER", got)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := DecodePayload(nil)
		require.NoError(t, err)
		require.Equal(t, "", got)
	})
}

func TestUnescapeNewlines(t *testing.T) {
	require.Equal(t, "DCSDOE\nDACJOHN", UnescapeNewlines(`DCSDOE\nDACJOHN`))
	require.Equal(t, "DCSDOE\nDACJOHN", UnescapeNewlines("DCSDOE\nDACJOHN"))
	require.Equal(t, `DAG1 \t ST`, UnescapeNewlines(`DAG1 \t ST`))
	require.Equal(t, "", UnescapeNewlines(""))
}
