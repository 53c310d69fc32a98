package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lampyrid/FIREFLY/internal/config"
	"github.com/lampyrid/FIREFLY/internal/optimization"
	"github.com/lampyrid/FIREFLY/internal/optimization/firefly"
	"github.com/lampyrid/FIREFLY/internal/optimization/problems"
)

// Logger is the subset of the logging package the server needs.
type Logger interface {
	Info(msg string, fields ...map[string]interface{})
	Error(msg string, fields ...map[string]interface{})
}

// RunRequest is the body of an optimization start call: a registered
// problem name, its dimensionality, and optional hyperparameter overrides.
type RunRequest struct {
	Problem    string `json:"problem"`
	Dimensions int    `json:"dimensions"`

	SwarmSize          int      `json:"swarm_size,omitempty"`
	MaxIterations      int      `json:"max_iterations,omitempty"`
	StuckRunIterations int      `json:"stuck_run_iterations,omitempty"`
	Attractiveness     *float64 `json:"attractiveness,omitempty"`
	LightAbsorption    *float64 `json:"light_absorption,omitempty"`
	MovementJitter     *float64 `json:"movement_jitter,omitempty"`
}

// RunState tracks one optimization job. It is thread-safe via the server's
// run mutex and transitions pending -> running -> completed|failed|cancelled.
type RunState struct {
	ID           string
	Problem      string
	Status       string
	StartTime    time.Time
	EndTime      *time.Time
	BestSolution *optimization.Solution
	Iterations   int
	Stagnated    bool
	Error        string
	CancelFunc   context.CancelFunc
	LastUpdated  time.Time
}

// Server implements the HTTP and JSON-RPC surface of the optimization
// service. It manages runs and provides endpoints to start, monitor, and
// cancel them.
type Server struct {
	cfg    *config.Config
	logger Logger

	runs   map[string]*RunState
	runsMu sync.RWMutex // Protects the runs map
}

// NewServer creates a new server instance with the given config and logger
func NewServer(cfg *config.Config, logger Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		runs:   make(map[string]*RunState),
	}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/problems", s.handleProblems)
		r.Post("/optimize", s.handleOptimize)
		r.Get("/status/{id}", s.handleStatus)
		r.Delete("/optimization/{id}", s.handleCancel)
	})

	// JSON-RPC 2.0 endpoint
	r.Post("/rpc", s.handleJSONRPC)
}

// handleJSONRPC handles JSON-RPC 2.0 requests
func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	var request struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      interface{}     `json:"id"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.respondWithError(w, -32700, "Parse error", nil)
		return
	}

	if request.JSONRPC != "2.0" {
		s.respondWithError(w, -32600, "Invalid Request", nil)
		return
	}

	var result interface{}
	var err error

	switch request.Method {
	case "optimization.start":
		var req RunRequest
		if err = json.Unmarshal(request.Params, &req); err == nil {
			result, err = s.startRun(req)
		}
	case "optimization.status":
		var params struct {
			RunID string `json:"run_id"`
		}
		if err = json.Unmarshal(request.Params, &params); err == nil {
			result, err = s.runStatus(params.RunID)
		}
	case "optimization.cancel":
		var params struct {
			RunID string `json:"run_id"`
		}
		if err = json.Unmarshal(request.Params, &params); err == nil {
			err = s.cancelRun(params.RunID)
		}
	default:
		s.respondWithError(w, -32601, "Method not found", request.ID)
		return
	}

	if err != nil {
		s.respondWithError(w, -32000, err.Error(), request.ID)
		return
	}

	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      request.ID,
		"result":  result,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// buildOptions merges the request's overrides over the configured defaults.
func (s *Server) buildOptions(req RunRequest) firefly.Options {
	opts := firefly.DefaultOptions()
	opts.Workers = s.cfg.Optimization.WorkerCount
	opts.SwarmSize = s.cfg.Optimization.SwarmSize
	opts.MaxIterations = s.cfg.Optimization.MaxIterations
	opts.StuckRunIterations = s.cfg.Optimization.StuckRunIterations

	if req.SwarmSize > 0 {
		opts.SwarmSize = req.SwarmSize
	}
	if req.MaxIterations > 0 {
		opts.MaxIterations = req.MaxIterations
	}
	if req.StuckRunIterations > 0 {
		opts.StuckRunIterations = req.StuckRunIterations
	}
	if req.Attractiveness != nil {
		opts.Attractiveness = req.Attractiveness
	}
	if req.LightAbsorption != nil {
		opts.LightAbsorption = req.LightAbsorption
	}
	if req.MovementJitter != nil {
		opts.MovementJitter = req.MovementJitter
	}
	return opts
}

// startRun validates the request, registers the run state, and launches the
// optimization in its own goroutine.
func (s *Server) startRun(req RunRequest) (interface{}, error) {
	if req.Problem == "" {
		return nil, fmt.Errorf("problem name is required")
	}
	dims := req.Dimensions
	if dims == 0 {
		dims = 2
	}

	problem, err := problems.ByName(req.Problem, dims)
	if err != nil {
		return nil, err
	}

	optimizer, err := firefly.New(s.buildOptions(req))
	if err != nil {
		return nil, err
	}

	id := fmt.Sprintf("run_%d", time.Now().UnixNano())
	ctx, cancel := context.WithCancel(context.Background())

	state := &RunState{
		ID:          id,
		Problem:     problem.Name(),
		Status:      "pending",
		StartTime:   time.Now(),
		CancelFunc:  cancel,
		LastUpdated: time.Now(),
	}

	s.runsMu.Lock()
	s.runs[id] = state
	s.runsMu.Unlock()

	runsStarted.WithLabelValues(problem.Name()).Inc()

	go s.runOptimization(ctx, state, optimizer, problem)

	return map[string]interface{}{
		"run_id": id,
		"status": "pending",
	}, nil
}

// runStatus reports the current status and results of a run.
func (s *Server) runStatus(id string) (interface{}, error) {
	if id == "" {
		return nil, fmt.Errorf("run_id is required")
	}

	s.runsMu.RLock()
	defer s.runsMu.RUnlock()

	state, exists := s.runs[id]
	if !exists {
		return nil, fmt.Errorf("run not found")
	}

	response := map[string]interface{}{
		"run_id":      state.ID,
		"problem":     state.Problem,
		"status":      state.Status,
		"start_time":  state.StartTime.Format(time.RFC3339),
		"last_update": state.LastUpdated.Format(time.RFC3339),
	}

	if state.EndTime != nil {
		response["end_time"] = state.EndTime.Format(time.RFC3339)
		response["iterations"] = state.Iterations
		response["stagnated"] = state.Stagnated
	}
	if state.Error != "" {
		response["error"] = state.Error
	}
	if state.BestSolution != nil {
		response["best_solution"] = map[string]interface{}{
			"position": state.BestSolution.Position,
			"value":    state.BestSolution.Value,
		}
	}

	return response, nil
}

// cancelRun cancels a pending or running optimization.
func (s *Server) cancelRun(id string) error {
	if id == "" {
		return fmt.Errorf("run_id is required")
	}

	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	state, exists := s.runs[id]
	if !exists {
		return fmt.Errorf("run not found")
	}

	switch state.Status {
	case "completed", "failed", "cancelled":
		return fmt.Errorf("cannot cancel run with status: %s", state.Status)
	}

	if state.CancelFunc != nil {
		state.CancelFunc()
	}

	state.Status = "cancelled"
	now := time.Now()
	state.EndTime = &now
	state.LastUpdated = now

	runsFinished.WithLabelValues(state.Problem, "cancelled").Inc()

	s.logger.Info("Run cancelled", map[string]interface{}{
		"run_id": id,
	})

	return nil
}

// respondWithError sends a JSON-RPC 2.0 error response
func (s *Server) respondWithError(w http.ResponseWriter, code int, message string, id interface{}) {
	s.logger.Error("Request error", map[string]interface{}{
		"status":  code,
		"message": message,
	})

	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
		"id": id,
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// runOptimization executes one optimization run in a goroutine.
func (s *Server) runOptimization(ctx context.Context, state *RunState, optimizer *firefly.Optimizer, problem problems.Benchmark) {
	s.runsMu.Lock()
	if state.Status == "cancelled" {
		// Cancelled before the run ever started.
		s.runsMu.Unlock()
		return
	}
	state.Status = "running"
	state.LastUpdated = time.Now()
	s.runsMu.Unlock()

	start := time.Now()
	result, err := optimizer.Optimize(ctx, problem)
	elapsed := time.Since(start)

	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	if state.Status == "cancelled" {
		// cancelRun already finalized the state and metrics.
		return
	}

	if err != nil {
		s.logger.Error("Run failed", map[string]interface{}{
			"run_id":  state.ID,
			"problem": state.Problem,
			"error":   err.Error(),
		})
		state.Status = "failed"
		state.Error = err.Error()
		runsFinished.WithLabelValues(state.Problem, "failed").Inc()
	} else {
		state.Status = "completed"
		state.BestSolution = result.BestSolution
		state.Iterations = result.Iterations
		state.Stagnated = result.Stagnated
		runsFinished.WithLabelValues(state.Problem, "completed").Inc()
		runDuration.WithLabelValues(state.Problem).Observe(elapsed.Seconds())
		runIterations.Observe(float64(result.Iterations))

		s.logger.Info("Run completed", map[string]interface{}{
			"run_id":     state.ID,
			"problem":    state.Problem,
			"minimum":    result.BestSolution.Value,
			"iterations": result.Iterations,
			"stagnated":  result.Stagnated,
			"seconds":    elapsed.Seconds(),
		})
	}

	now := time.Now()
	state.EndTime = &now
	state.LastUpdated = now
}

// Close cleans up resources
func (s *Server) Close() error {
	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	for _, run := range s.runs {
		if run.CancelFunc != nil {
			run.CancelFunc()
		}
	}
	return nil
}

// handleProblems handles GET /problems: the registered benchmark names.
func (s *Server) handleProblems(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"problems": problems.Names(),
	})
}

// handleOptimize handles POST /optimize for starting a new run
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := s.startRun(req)

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(result)
}

// handleStatus handles GET /status/{id}
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		http.Error(w, "Missing run ID", http.StatusBadRequest)
		return
	}

	result, err := s.runStatus(runID)

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// handleCancel handles DELETE /optimization/{id}
func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		http.Error(w, "Missing run ID", http.StatusBadRequest)
		return
	}

	err := s.cancelRun(runID)

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "cancellation requested",
	})
}
