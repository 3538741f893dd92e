package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunCli_StdinJson(t *testing.T) {
	var out bytes.Buffer
	err := runCli("", "json", strings.NewReader(`DCSDOE\nDBB01151990\nDBC2`), &out)
	require.NoError(t, err)

	require.True(t, strings.HasSuffix(out.String(), "}\n"))
	require.Equal(t, 1, strings.Count(out.String(), "\n"))
	require.Contains(t, out.String(), `"last_name":"DOE"`)
	require.Contains(t, out.String(), `"date_of_birth":"1990-01-15"`)
	require.Contains(t, out.String(), `"gender":2`)
}

func TestRunCli_FileYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.txt")
	require.NoError(t, os.WriteFile(path, []byte("DCSDOE\r\nDAU180CM\r\n"), 0o600))

	var out bytes.Buffer
	err := runCli(path, "yaml", strings.NewReader(""), &out)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(out.String(), "vehicle_class: \"\"\n"))
	require.Contains(t, out.String(), "last_name: DOE\n")
	require.Contains(t, out.String(), "height: \"70.87\"\n")
	require.Contains(t, out.String(), "gender: 9\n")
}

func TestRunCli_Latin1File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	require.NoError(t, os.WriteFile(path, []byte{'D', 'C', 'S', 'N', 0xD6, 'L', '\n'}, 0o600))

	var out bytes.Buffer
	require.NoError(t, runCli(path, "json", nil, &out))
	require.Contains(t, out.String(), `"last_name":"NÖL"`)
}

func TestRunCli_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runCli("", "json", strings.NewReader(""), &out))
	require.Contains(t, out.String(), `"last_name":""`)
	require.Contains(t, out.String(), `"gender":9`)
}

func TestRunCli_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		var out bytes.Buffer
		err := runCli(filepath.Join(t.TempDir(), "nope.txt"), "json", nil, &out)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to read file")
		require.Empty(t, out.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		var out bytes.Buffer
		err := runCli("", "toml", strings.NewReader("DCSDOE"), &out)
		require.Error(t, err)
		require.Empty(t, out.String())
	})
}

func TestParseLicencePayloadUnescapes(t *testing.T) {
	record := parseLicencePayload(`DCSDOE\nDACJOHN`)
	require.Equal(t, "DOE", record.LastName)
	require.Equal(t, "JOHN", record.FirstName)
}
