package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pocketfin-dev/pocketfin/internal/ledger"
	"github.com/pocketfin-dev/pocketfin/internal/model"
)

// Parser converts a statement file into transaction drafts.
type Parser interface {
	Parse(r io.Reader) ([]ledger.TransactionParams, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&GenericParser{})
	return r
}

// Creator is the engine operation the importer feeds rows through, so
// every imported row gets the same validation and balance handling as a
// hand-entered one.
type Creator interface {
	Create(ctx context.Context, p ledger.TransactionParams) (model.Transaction, error)
}

// Result summarizes one import run.
type Result struct {
	Created int
	Skipped []RowError
}

// RowError records a row that failed validation and was skipped.
type RowError struct {
	Row int
	Err error
}

// Import parses r with the named format and creates each draft through
// the engine. Validation failures skip the row and are reported in the
// result; storage failures abort the run.
func Import(ctx context.Context, reg *Registry, format string, r io.Reader, engine Creator) (Result, error) {
	p := reg.Get(format)
	if p == nil {
		return Result{}, fmt.Errorf("unknown import format %q", format)
	}

	drafts, err := p.Parse(r)
	if err != nil {
		return Result{}, fmt.Errorf("parsing %s file: %w", format, err)
	}

	var res Result
	for i, draft := range drafts {
		if _, err := engine.Create(ctx, draft); err != nil {
			if ledger.IsValidation(err) {
				res.Skipped = append(res.Skipped, RowError{Row: i + 2, Err: err})
				continue
			}
			return res, fmt.Errorf("row %d: %w", i+2, err)
		}
		res.Created++
	}
	return res, nil
}
