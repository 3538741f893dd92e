package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"aamva-parser/document"
	"aamva-parser/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const ErrorInternal = "error:internal"
const ERR_MARSHAL = "failed to marshal response message"
const ERR_DECODE_REQUEST = "failed to decode request body"
const ERR_SCAN_STORE = "failed to store scan"
const ERR_SCAN_NOT_FOUND = "scan not found"
const ERR_JWT_CREATION = "failed to create jwt"
const ERR_ISSUER_MISSING = "licence issuer is not configured"

// errWriteBody marks a response whose headers already went out
var errWriteBody = errors.New("failed to write response body")

type ServerConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	UseTls         bool   `json:"use_tls,omitempty"`
	TlsPrivKeyPath string `json:"tls_priv_key_path,omitempty"`
	TlsCertPath    string `json:"tls_cert_path,omitempty"`
}

type ServerState struct {
	scanStorage ScanStorage
	// nil when no signing key is configured
	jwtCreator JwtCreator
	issuerId   string
}

type Server struct {
	server *http.Server
	config ServerConfig
}

func (s *Server) ListenAndServe() error {
	if s.config.UseTls {
		slog.Info("Starting server with TLS", "host", s.config.Host, "port", s.config.Port, "cert", s.config.TlsCertPath, "key", s.config.TlsPrivKeyPath)
		return s.server.ListenAndServeTLS(s.config.TlsCertPath, s.config.TlsPrivKeyPath)
	}
	slog.Info("Starting server without TLS", "host", s.config.Host, "port", s.config.Port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	if err != nil {
		slog.Error("Error during server shutdown", "error", err)
	} else {
		slog.Info("Server shut down successfully")
	}
	return err
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func NewServer(state *ServerState, config ServerConfig) (*Server, error) {
	if state == nil || state.scanStorage == nil {
		return nil, fmt.Errorf("server state needs a scan storage")
	}

	slog.Info("Creating new server", "host", config.Host, "port", config.Port, "tls", config.UseTls)
	RegisterMetrics()
	router := mux.NewRouter()

	router.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("Health check request received")
		err := json.NewEncoder(w).Encode(map[string]bool{"ok": true})
		if err != nil {
			slog.Error("failed to write body to http response", "error", err)
		}
	})

	router.HandleFunc("/api/parse-licence", func(w http.ResponseWriter, r *http.Request) {
		handleParseLicence(state, w, r)
	})
	router.HandleFunc("/api/issue-licence", func(w http.ResponseWriter, r *http.Request) {
		handleIssueLicence(state, w, r)
	})
	router.HandleFunc("/api/scans/{scan_id}", func(w http.ResponseWriter, r *http.Request) {
		handleGetScan(state, w, r)
	}).Methods(http.MethodGet)
	router.HandleFunc("/api/scans/{scan_id}", func(w http.ResponseWriter, r *http.Request) {
		handleDeleteScan(state, w, r)
	}).Methods(http.MethodDelete)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	slog.Debug("Registered all API routes")

	addr := fmt.Sprintf("%v:%v", config.Host, config.Port)
	srv := &http.Server{
		Handler:      router,
		Addr:         addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	slog.Info("Server created successfully", "address", addr)
	return &Server{
		server: srv,
		config: config,
	}, nil
}

func handleParseLicence(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	slog.Info("Received request to parse a licence payload")

	var request models.LicenceParseRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", ERR_DECODE_REQUEST, err)
		return
	}

	format, err := document.ParseOutputFormat(request.Format)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid format", "unsupported output format requested", err)
		return
	}

	record := parseLicencePayload(request.RawData)
	RecordParse(SOURCE_HTTP, record)

	scanId := GenerateScanId()
	if err := state.scanStorage.StoreScan(scanId, record); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_SCAN_STORE, err)
		return
	}
	slog.Debug("Scan stored", "scan_id", scanId)

	response := models.LicenceParseResponse{
		ScanId:        scanId,
		Record:        record,
		InvalidFields: record.InvalidFields(),
	}

	if err := writeEncoded(w, http.StatusOK, response, format); err != nil {
		respondEncodeFailure(w, err)
		return
	}

	slog.Info("Licence payload parsed", "scan_id", scanId, "invalid_fields", len(response.InvalidFields))
}

func handleGetScan(state *ServerState, w http.ResponseWriter, r *http.Request) {
	scanId := mux.Vars(r)["scan_id"]

	record, err := state.scanStorage.RetrieveScan(scanId)
	if err != nil {
		respondWithErr(w, http.StatusNotFound, ERR_SCAN_NOT_FOUND, ERR_SCAN_NOT_FOUND, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, record); err != nil {
		respondEncodeFailure(w, err)
	}
}

func handleDeleteScan(state *ServerState, w http.ResponseWriter, r *http.Request) {
	scanId := mux.Vars(r)["scan_id"]

	if err := state.scanStorage.RemoveScan(scanId); err != nil {
		respondWithErr(w, http.StatusNotFound, ERR_SCAN_NOT_FOUND, ERR_SCAN_NOT_FOUND, err)
		return
	}

	slog.Info("Scan removed", "scan_id", scanId)
	w.WriteHeader(http.StatusNoContent)
}

func handleIssueLicence(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	slog.Info("Received request to issue a licence credential")

	if state.jwtCreator == nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_ISSUER_MISSING, fmt.Errorf("%s", ERR_ISSUER_MISSING))
		return
	}

	var request models.LicenceIssuanceRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", ERR_DECODE_REQUEST, err)
		return
	}

	record, err := state.scanStorage.RetrieveScan(request.ScanId)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid scan", ERR_SCAN_NOT_FOUND, err)
		return
	}

	slog.Debug("Creating licence JWT", "scan_id", request.ScanId)
	jwt, err := state.jwtCreator.CreateLicenceJwt(record)
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ERR_JWT_CREATION, ERR_JWT_CREATION, err)
		return
	}

	// a scan is issued at most once
	if err := state.scanStorage.RemoveScan(request.ScanId); err != nil {
		slog.Warn("failed to remove issued scan", "scan_id", request.ScanId, "error", err)
	}

	response := models.LicenceIssuanceResponse{
		Jwt:    jwt,
		Issuer: state.issuerId,
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondEncodeFailure(w, err)
		return
	}

	slog.Info("Licence credential issued", "scan_id", request.ScanId)
}

func GenerateScanId() string {
	return uuid.NewString()
}

func respondWithErr(w http.ResponseWriter, code int, responseBody string, logMsg string, e error) {
	slog.Error(logMsg, "error", e, "status_code", code, "response_body", responseBody)
	w.WriteHeader(code)
	if _, err := w.Write([]byte(responseBody)); err != nil {
		slog.Error("failed to write body to http response", "error", err)
	}
}

// respondEncodeFailure answers a failed writeEncoded. When the body write
// itself failed the status line is already sent and only the log remains.
func respondEncodeFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, errWriteBody) {
		return
	}
	respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
}

// helpers ------------

func closeRequestBody(r *http.Request) {
	if err := r.Body.Close(); err != nil {
		slog.Error("failed to close request body", "error", err)
	}
}

func requirePOST(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		slog.Debug("Non-POST request rejected", "method", r.Method, "path", r.URL.Path)
		respondWithErr(w, http.StatusMethodNotAllowed, "method not allowed", "invalid method", nil)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	return writeEncoded(w, status, v, document.FORMAT_JSON)
}

func writeEncoded(w http.ResponseWriter, status int, v any, format document.OutputFormat) error {
	slog.Debug("Writing response", "status_code", status, "format", format)
	payload, err := document.Encode(v, format)
	if err != nil {
		slog.Error("Failed to marshal payload", "error", err)
		return err
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(status)
	_, err = w.Write(payload)
	if err != nil {
		slog.Error("failed to write body to http response", "error", err)
		return fmt.Errorf("%w: %w", errWriteBody, err)
	}
	slog.Debug("Response written successfully", "status_code", status, "payload_size", len(payload))
	return nil
}
