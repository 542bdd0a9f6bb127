package confrag

import "context"

// TokenFunc receives answer tokens as they are streamed from the model.
type TokenFunc func(token string)

// Asker answers natural language questions grounded in retrieved chunks.
type Asker interface {
	// Ask retrieves context relevant to the question, prompts the chat
	// model with the session history and the retrieved context, and
	// streams answer tokens through onToken as they arrive. The complete
	// answer is returned; the caller decides whether to record it on the
	// session. onToken may be nil.
	Ask(ctx context.Context, session *Session, question string, onToken TokenFunc) (string, error)
}
