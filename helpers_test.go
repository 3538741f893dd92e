package main

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"aamva-parser/document/aamva"

	"github.com/stretchr/testify/require"
)

const TEST_ISSUER = "aamva_issuer"

// Escaped on one line, the way handheld scanners emit it
const TEST_PAYLOAD = `DCAC\nDCBNONE\nDCDNONE\nDBA04302029\nDCSSAMPLE\nDACANNA\nDADMARIE\nDBD04302021\nDBB07041985\nDBC2\nDAYBLU\nDAU165 CM\nDAG123 MAIN ST\nDAIHARRISBURG\nDAJPA\nDAK171010000`

var testConfig = ServerConfig{
	Host: "localhost",
	Port: 8081,
}

func startTestServer(t *testing.T, storage ScanStorage, creator JwtCreator) *httptest.Server {
	t.Helper()

	testState := &ServerState{
		scanStorage: storage,
		jwtCreator:  creator,
		issuerId:    TEST_ISSUER,
	}

	srv, err := NewServer(testState, testConfig)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON[T any](t *testing.T, url string, payload any) (*http.Response, []byte, *T) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	}
	resp, err := http.Post(url, "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var v T
	_ = json.Unmarshal(respBody, &v)

	return resp, respBody, &v
}

func doRequest(t *testing.T, method, url string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func mustStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	require.Equalf(t, want, resp.StatusCode, "body: %s", body)
}

// writeTestKey writes a fresh RSA key as PKCS#1 PEM and returns its path
func writeTestKey(t *testing.T) (string, *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	path := filepath.Join(t.TempDir(), "priv.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))
	return path, key
}

// test doubles

type fakeJwtCreator struct {
	jwt string
	err error
}

func (f fakeJwtCreator) CreateLicenceJwt(_ aamva.Record) (string, error) {
	return f.jwt, f.err
}

type failingScanStorage struct{}

func (failingScanStorage) StoreScan(string, aamva.Record) error {
	return fmt.Errorf("storage unavailable")
}

func (failingScanStorage) RetrieveScan(string) (aamva.Record, error) {
	return aamva.Record{}, fmt.Errorf("storage unavailable")
}

func (failingScanStorage) RemoveScan(string) error {
	return fmt.Errorf("storage unavailable")
}
