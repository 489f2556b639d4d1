// Package questions defines the question-list collaborator consumed at
// session creation. Question content storage and retrieval live outside
// this system; the lifecycle only ever sees opaque refs.
package questions

import (
	"context"
	"fmt"

	"github.com/prepdeck/prepdeck/internal/quiz"
)

// Provider supplies the ordered question refs for a new session.
type Provider interface {
	// QuestionRefs returns up to count opaque question identifiers for
	// the given mode. The order is the order the session presents them.
	QuestionRefs(ctx context.Context, mode quiz.Mode, count int) ([]string, error)
}

// StaticProvider serves a fixed ref list, for tests and hosts without a
// content backend.
type StaticProvider struct {
	refs []string
}

// NewStaticProvider creates a provider over the given refs.
func NewStaticProvider(refs []string) *StaticProvider {
	out := make([]string, len(refs))
	copy(out, refs)
	return &StaticProvider{refs: out}
}

// QuestionRefs returns the first count refs.
func (p *StaticProvider) QuestionRefs(ctx context.Context, mode quiz.Mode, count int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if count <= 0 || count > len(p.refs) {
		return nil, fmt.Errorf("requested %d questions, have %d", count, len(p.refs))
	}

	out := make([]string, count)
	copy(out, p.refs[:count])
	return out, nil
}
