// Package chi exposes the answering pipeline over HTTP.
package chi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/raglab/answerd/internal/domain"
	"github.com/raglab/answerd/internal/index"
	"github.com/raglab/answerd/internal/logger"
	"github.com/raglab/answerd/internal/metrics"
	answeruc "github.com/raglab/answerd/internal/usecase/answer"
	guardrailuc "github.com/raglab/answerd/internal/usecase/guardrail"
	healthuc "github.com/raglab/answerd/internal/usecase/health"
	retrievaluc "github.com/raglab/answerd/internal/usecase/retrieval"
	"github.com/raglab/answerd/internal/version"
)

// Transformer projects text into the fitted vector space.
type Transformer interface {
	Transform(text string) index.Vector
}

// Server wires the guardrail, retrieval, answer, and metrics services to HTTP
// endpoints.
type Server struct {
	space         Transformer
	guard         *guardrailuc.Matcher
	retrieval     *retrievaluc.Service
	answers       *answeruc.Service
	aggregator    *metrics.Aggregator
	health        *healthuc.Service
	defaultConfig domain.RetrievalConfig
	maxTopK       int
	logger        *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	space Transformer,
	guard *guardrailuc.Matcher,
	retrieval *retrievaluc.Service,
	answers *answeruc.Service,
	aggregator *metrics.Aggregator,
	health *healthuc.Service,
	defaultConfig domain.RetrievalConfig,
	maxTopK int,
	logger *zap.Logger,
) *Server {
	return &Server{
		space:         space,
		guard:         guard,
		retrieval:     retrieval,
		answers:       answers,
		aggregator:    aggregator,
		health:        health,
		defaultConfig: defaultConfig,
		maxTopK:       maxTopK,
		logger:        logger,
	}
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/answer", s.handleAnswer)
	r.Get("/metrics", s.handleMetrics)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics/prometheus", promhttp.Handler())
}

// handleAnswer handles POST /answer: guardrail check, retrieval, synthesis.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query must not be empty")
		return
	}

	cfg := s.defaultConfig
	if req.Config != nil {
		resolved, err := domain.ConfigFromPreset(*req.Config)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed,
				fmt.Sprintf("config must be one of %q, %q", domain.PresetCos3, domain.PresetDot5))
			return
		}
		cfg = resolved
	}
	if req.TopK != nil {
		if *req.TopK < 1 || *req.TopK > s.maxTopK {
			writeError(w, http.StatusBadRequest, codeValidationFailed,
				fmt.Sprintf("top_k must be between 1 and %d", s.maxTopK))
			return
		}
		cfg = cfg.WithTopK(*req.TopK)
	}

	s.answerQuery(w, r, req.Query, cfg)
}

// answerQuery runs the pipeline for a validated request. Metrics recording is
// deferred so it is the last, unconditional step for every outcome.
func (s *Server) answerQuery(w http.ResponseWriter, r *http.Request, query string, cfg domain.RetrievalConfig) {
	start := time.Now()
	var ev metrics.Event
	defer func() {
		ev.LatencyMS = float64(time.Since(start).Microseconds()) / 1000.0
		s.aggregator.Record(ev)
	}()

	// The query is vectorized exactly once and shared by both stages.
	queryVec := s.space.Transform(query)

	outcome := s.guard.Check(query, queryVec)
	if outcome.Blocked() {
		ev.Blocked = true
		metrics.GuardrailBlocksTotal.WithLabelValues(string(outcome.Stage())).Inc()
		logger.FromContext(r.Context()).Info("guardrail_block",
			zap.String("stage", string(outcome.Stage())),
			zap.String("matched_phrase", outcome.MatchedPhrase()),
			zap.Float64("score", outcome.Score()),
		)
		writeError(w, http.StatusBadRequest, codeGuardrailBlocked,
			fmt.Sprintf("Query blocked by guardrail. Matched denied phrase: %q (stage: %s)",
				outcome.MatchedPhrase(), outcome.Stage()))
		return
	}

	result := s.retrieval.Retrieve(queryVec, cfg)
	if result.LowConfidence {
		ev.LowConfidence = true
		metrics.LowConfidenceTotal.Inc()
	}

	writeJSON(w, http.StatusOK, answerResponse{
		Answer:        s.answers.Synthesize(result.Snippets, result.LowConfidence),
		Snippets:      snippetsToDTO(result.Snippets),
		ConfigUsed:    cfg.Label(),
		LowConfidence: result.LowConfidence,
	})
}

// handleMetrics handles GET /metrics with a JSON snapshot of request metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.aggregator.Snapshot())
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	report := s.health.Check()

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for name, c := range report.Checks {
		checks[name] = string(c)
	}

	writeJSON(w, status, healthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}

func snippetsToDTO(snippets []domain.ScoredDocument) []snippetDTO {
	out := make([]snippetDTO, len(snippets))
	for i, s := range snippets {
		out[i] = snippetDTO{ID: s.ID, Text: s.Text, Score: s.Score}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
