package health

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Unhealthy indicates a failing component.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// CorpusReader reports how many documents are loaded.
type CorpusReader interface {
	Count() int
}

// IndexReader reports the fitted vocabulary size.
type IndexReader interface {
	VocabularySize() int
}

// Service coordinates health checks over the corpus and the fitted index.
type Service struct {
	corpus CorpusReader
	index  IndexReader
}

// New creates a Service.
func New(corpus CorpusReader, index IndexReader) *Service {
	return &Service{corpus: corpus, index: index}
}

// Check reports component health. The corpus and index are built at startup,
// so a failing check here means initialization was skipped or raced.
func (s *Service) Check() Report {
	checks := make(map[string]CheckResult)

	if s.corpus != nil && s.corpus.Count() > 0 {
		checks["corpus"] = CheckOK
	} else {
		checks["corpus"] = CheckError
	}

	if s.index != nil && s.index.VocabularySize() > 0 {
		checks["index"] = CheckOK
	} else {
		checks["index"] = CheckError
	}

	status := Healthy
	for _, c := range checks {
		if c == CheckError {
			status = Unhealthy
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
