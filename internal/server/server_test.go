package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lampyrid/FIREFLY/internal/config"
	"github.com/lampyrid/FIREFLY/internal/logging"
	"github.com/lampyrid/FIREFLY/internal/optimization/firefly"
)

var _ Logger = (*logging.Logger)(nil)

// testConfig creates a test configuration with default values
func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{
		Environment: "test",
	}

	cfg.HTTP.Port = 8080
	cfg.HTTP.ReadTimeout = 30 * time.Second
	cfg.HTTP.WriteTimeout = 30 * time.Second
	cfg.HTTP.IdleTimeout = 120 * time.Second
	cfg.HTTP.ShutdownTimeout = 30 * time.Second

	cfg.Logging.Level = "error"
	cfg.Logging.Format = "json"
	cfg.Logging.Output = "stdout"

	// Keep test runs small and fast.
	cfg.Optimization.WorkerCount = 2
	cfg.Optimization.SwarmSize = 15
	cfg.Optimization.MaxIterations = 100
	cfg.Optimization.StuckRunIterations = 100

	return cfg
}

// testLogger creates a test logger
func testLogger(t *testing.T) *logging.Logger {
	logger, err := logging.NewLogger(&logging.Config{
		Level:  "error",
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return logger
}

func testRouter(t *testing.T) (*Server, chi.Router) {
	srv := NewServer(testConfig(t), testLogger(t))
	r := chi.NewRouter()
	srv.RegisterRoutes(r)
	return srv, r
}

func TestNewServer(t *testing.T) {
	srv := NewServer(testConfig(t), testLogger(t))
	assert.NotNil(t, srv, "Server should be created")
}

func TestRegisterRoutes(t *testing.T) {
	_, r := testRouter(t)

	tests := []struct {
		method      string
		path        string
		shouldExist bool
	}{
		{"GET", "/api/v1/problems", true},
		{"POST", "/api/v1/optimize", true},
		{"GET", "/api/v1/status/123", true},
		{"DELETE", "/api/v1/optimization/123", true},
		{"POST", "/rpc", true},
		{"GET", "/healthz", false}, // Not registered by server package
		{"GET", "/nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			// A 404 means the route doesn't exist
			if tt.shouldExist && rr.Code == http.StatusNotFound {
				t.Errorf("Route %s %s should exist but returned 404", tt.method, tt.path)
			}
		})
	}
}

func TestProblemsEndpoint(t *testing.T) {
	_, r := testRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/problems", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Problems []string `json:"problems"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Contains(t, response.Problems, "sphere")
	assert.Contains(t, response.Problems, "eggholder")
}

// waitForStatus polls a run until it reaches a terminal state.
func waitForStatus(t *testing.T, r chi.Router, id string) map[string]interface{} {
	t.Helper()
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		req := httptest.NewRequest("GET", "/api/v1/status/"+id, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var status map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&status))

		switch status["status"] {
		case "completed", "failed", "cancelled":
			return status
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("run did not reach a terminal state in time")
	return nil
}

func TestOptimizeEndToEnd(t *testing.T) {
	_, r := testRouter(t)

	body, err := json.Marshal(RunRequest{
		Problem:       "sphere",
		Dimensions:    2,
		SwarmSize:     20,
		MaxIterations: 200,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/optimize", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusAccepted, rr.Code)

	var started map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&started))
	id, ok := started["run_id"].(string)
	require.True(t, ok, "response should contain run_id")

	status := waitForStatus(t, r, id)
	assert.Equal(t, "completed", status["status"])
	assert.Equal(t, "sphere", status["problem"])

	best, ok := status["best_solution"].(map[string]interface{})
	require.True(t, ok, "completed run should report a best solution")
	assert.Less(t, best["value"].(float64), 1e-3, "sphere should converge near 0")

	position, ok := best["position"].([]interface{})
	require.True(t, ok)
	assert.Len(t, position, 2)
}

func TestBuildOptionsHonorsExplicitZero(t *testing.T) {
	// A client sending an explicit 0 for a coefficient must get a run with
	// that coefficient, not the configured default.
	srv := NewServer(testConfig(t), testLogger(t))

	zero := 0.0
	opts := srv.buildOptions(RunRequest{Problem: "sphere", Attractiveness: &zero})
	require.NotNil(t, opts.Attractiveness)
	assert.Equal(t, 0.0, *opts.Attractiveness)

	o, err := firefly.New(opts)
	require.NoError(t, err)
	assert.Equal(t, 0.0, *o.Options().Attractiveness)
}

func TestOptimizeRejectsUnknownProblem(t *testing.T) {
	_, r := testRouter(t)

	body, err := json.Marshal(RunRequest{Problem: "does-not-exist", Dimensions: 2})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/optimize", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStatusNotFound(t *testing.T) {
	_, r := testRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/status/run_missing", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestJSONRPCStart(t *testing.T) {
	_, r := testRouter(t)

	body := []byte(`{
		"jsonrpc": "2.0",
		"id": 1,
		"method": "optimization.start",
		"params": {"problem": "sphere", "dimensions": 2, "swarm_size": 10, "max_iterations": 20}
	}`)

	req := httptest.NewRequest("POST", "/rpc", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Equal(t, "2.0", response["jsonrpc"])

	result, ok := response["result"].(map[string]interface{})
	require.True(t, ok, "response should contain a result")
	assert.NotEmpty(t, result["run_id"])
}

func TestJSONRPCUnknownMethod(t *testing.T) {
	_, r := testRouter(t)

	body := []byte(`{"jsonrpc": "2.0", "id": 2, "method": "no.such.method"}`)
	req := httptest.NewRequest("POST", "/rpc", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))

	errObj, ok := response["error"].(map[string]interface{})
	require.True(t, ok, "response should contain error object")
	assert.Equal(t, float64(-32601), errObj["code"])
}

func TestCancelRun(t *testing.T) {
	srv, r := testRouter(t)

	// Register a long run, then cancel before it finishes.
	body, err := json.Marshal(RunRequest{
		Problem:       "rastrigin",
		Dimensions:    20,
		SwarmSize:     100,
		MaxIterations: 100000,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/optimize", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusAccepted, rr.Code)

	var started map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&started))
	id := started["run_id"].(string)

	req = httptest.NewRequest("DELETE", "/api/v1/optimization/"+id, nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	status := waitForStatus(t, r, id)
	assert.Equal(t, "cancelled", status["status"])

	// A second cancel of a terminal run is rejected.
	req = httptest.NewRequest("DELETE", "/api/v1/optimization/"+id, nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	require.NoError(t, srv.Close())
}

func TestClose(t *testing.T) {
	srv := NewServer(testConfig(t), testLogger(t))
	err := srv.Close()
	assert.NoError(t, err, "Close should not return an error")
}

func TestRespondWithError(t *testing.T) {
	srv, _ := testRouter(t)

	tests := []struct {
		name       string
		code       int
		message    string
		id         interface{}
		expectedID interface{}
		expectCode int
	}{
		{
			name:       "valid error response",
			code:       http.StatusBadRequest,
			message:    "invalid input",
			id:         "123",
			expectedID: "123",
			expectCode: http.StatusOK, // respondWithError writes 200 with error in body
		},
		{
			name:       "nil id",
			code:       http.StatusInternalServerError,
			message:    "server error",
			id:         nil,
			expectedID: nil,
			expectCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			srv.respondWithError(rr, tt.code, tt.message, tt.id)

			assert.Equal(t, tt.expectCode, rr.Code, "status code should match")

			var response map[string]interface{}
			err := json.NewDecoder(rr.Body).Decode(&response)
			assert.NoError(t, err, "should decode response body")

			errObj, ok := response["error"].(map[string]interface{})
			assert.True(t, ok, "response should contain error object")
			assert.Equal(t, float64(tt.code), errObj["code"], "error code should match")
			assert.Equal(t, tt.message, errObj["message"], "error message should match")

			assert.Equal(t, tt.expectedID, response["id"], "response ID should match")
		})
	}
}
