package mock

import (
	"context"

	"github.com/asjoberg/confrag"
)

var _ confrag.Asker = (*Asker)(nil)

// Asker is a mock implementation of confrag.Asker.
type Asker struct {
	AskFn func(ctx context.Context, session *confrag.Session, question string, onToken confrag.TokenFunc) (string, error)
}

func (a *Asker) Ask(ctx context.Context, session *confrag.Session, question string, onToken confrag.TokenFunc) (string, error) {
	return a.AskFn(ctx, session, question, onToken)
}
