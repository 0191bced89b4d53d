package domain

// Filter operators understood by the trip filter normalizer.
const (
	OpEq = "="
)

// Pagination carries an offset window over an ordered result.
type Pagination struct {
	Start      int `json:"limit_start"`
	PageLength int `json:"limit_page_length"`
}

// Filter expresses a simple filter clause.
type Filter struct {
	Table string `json:"table,omitempty"`
	Field string `json:"field"`
	Op    string `json:"op"` // only "=" is honored
	Value any    `json:"value"`
}

// Actor identifies the caller when a verified token was presented.
type Actor struct {
	Subject string `json:"sub"`
	Role    string `json:"role,omitempty"`
}
