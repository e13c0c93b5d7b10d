package corpus

import "github.com/raglab/answerd/internal/domain"

// Default returns the built-in corpus of 12 snippets about retrieval and
// serving concepts. Used when no corpus file is configured.
func Default() []domain.Document {
	return []domain.Document{
		{
			ID:   "s1",
			Text: "Cosine similarity measures the angle between two vectors, normalizing for magnitude. It's ideal for text comparison where document length shouldn't dominate.",
		},
		{
			ID:   "s2",
			Text: "Dot product similarity considers both direction and magnitude of vectors. Longer documents with more terms can score higher even if conceptually similar.",
		},
		{
			ID:   "s3",
			Text: "TF-IDF (Term Frequency-Inverse Document Frequency) weights terms by their importance in a document relative to the entire corpus. Common words get lower weights.",
		},
		{
			ID:   "s4",
			Text: "Guardrails in AI systems include content filters, rate limits, and policy enforcement. They protect against harmful outputs and resource abuse.",
		},
		{
			ID:   "s5",
			Text: "Web frameworks validate request payloads against typed schemas. Invalid inputs are rejected with a structured error before reaching business logic.",
		},
		{
			ID:   "s6",
			Text: "Latency percentiles (p95, p99) matter more than averages in production systems. Tail latency affects user experience and SLA compliance.",
		},
		{
			ID:   "s7",
			Text: "The twelve-factor app methodology recommends storing configuration in environment variables, not code. This enables clean separation between environments.",
		},
		{
			ID:   "s8",
			Text: "Low-confidence detection helps identify when a retrieval system may be returning poor results. It's a simple drift indicator for monitoring.",
		},
		{
			ID:   "s9",
			Text: "HTTP middleware runs before and after request handling. It's the natural place for cross-cutting concerns like logging, metrics, and timing.",
		},
		{
			ID:   "s10",
			Text: "Top-k retrieval returns the k most similar documents. Higher k increases recall but may reduce precision by including noisier results.",
		},
		{
			ID:   "s11",
			Text: "Denylist guardrails block specific phrases or patterns. They're deterministic, auditable, and require no ML models—ideal for baseline safety.",
		},
		{
			ID:   "s12",
			Text: "Vector normalization (L2) scales vectors to unit length. This makes dot product equivalent to cosine similarity and removes magnitude bias.",
		},
	}
}
