package chi

// answerRequest is the POST /answer payload.
type answerRequest struct {
	Query  string  `json:"query"`
	Config *string `json:"config,omitempty"` // preset name: cos3, dot5
	TopK   *int    `json:"top_k,omitempty"`  // override, bounded to [1, max_top_k]
}

// snippetDTO is a single retrieved snippet with its score.
type snippetDTO struct {
	ID    string  `json:"id"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// answerResponse is the POST /answer response.
type answerResponse struct {
	Answer        string       `json:"answer"`
	Snippets      []snippetDTO `json:"snippets"`
	ConfigUsed    string       `json:"config_used"` // resolved label, e.g. "cosine,k=3"
	LowConfidence bool         `json:"low_confidence"`
}

// healthResponse is the GET /health response.
type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

// errorResponse is the error envelope for all endpoints.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned to clients.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeGuardrailBlocked = "guardrail_blocked"
	codeUnauthorized     = "unauthorized"
)
