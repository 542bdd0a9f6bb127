package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/asjoberg/confrag"
	"google.golang.org/genai"
)

// DefaultChatModel is used when no chat model is configured.
const DefaultChatModel = "gemini-2.5-flash"

// DefaultTopK is how many chunks are retrieved per question.
const DefaultTopK = 5

// Ensure Asker implements confrag.Asker at compile time.
var _ confrag.Asker = (*Asker)(nil)

// Asker answers questions grounded in retrieved chunks using Google
// Gemini. Answers are streamed token by token through the caller's
// TokenFunc.
type Asker struct {
	client *genai.Client
	chunks confrag.ChunkService
	model  string
	topK   int
}

// AskerOption configures an Asker.
type AskerOption func(*Asker)

// WithChatModel overrides the chat model.
func WithChatModel(model string) AskerOption {
	return func(a *Asker) {
		if model != "" {
			a.model = model
		}
	}
}

// WithTopK overrides how many chunks are retrieved per question.
func WithTopK(k int) AskerOption {
	return func(a *Asker) {
		if k > 0 {
			a.topK = k
		}
	}
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, chunks confrag.ChunkService, opts ...AskerOption) *Asker {
	a := &Asker{
		client: client,
		chunks: chunks,
		model:  DefaultChatModel,
		topK:   DefaultTopK,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ask retrieves the chunks most similar to the question, prompts the
// model with the session history and retrieved context, and streams the
// answer. The complete answer is returned once the stream ends.
func (a *Asker) Ask(ctx context.Context, session *confrag.Session, question string, onToken confrag.TokenFunc) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", confrag.Errorf(confrag.EINVALID, "Question is required.")
	}

	results, err := a.chunks.Search(ctx, question, confrag.SearchOptions{Limit: a.topK})
	if err != nil {
		return "", fmt.Errorf("retrieving context: %w", err)
	}

	history := "No previous conversation."
	if session != nil {
		history = confrag.FormatHistory(session.Recent(confrag.DefaultHistoryWindow))
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: BuildSystemPrompt(history, results)}},
		},
	}
	contents := []*genai.Content{genai.NewContentFromText(question, genai.RoleUser)}

	var answer strings.Builder
	for resp, err := range a.client.Models.GenerateContentStream(ctx, a.model, contents, config) {
		if err != nil {
			return "", err
		}
		token := resp.Text()
		if token == "" {
			continue
		}
		answer.WriteString(token)
		if onToken != nil {
			onToken(token)
		}
	}

	return answer.String(), nil
}

// BuildSystemPrompt builds the system instruction containing the
// assistant persona, the formatted conversation history, and the
// retrieved context.
func BuildSystemPrompt(history string, results []confrag.SearchResult) string {
	var sb strings.Builder
	sb.WriteString("You are a friendly assistant for question-answering tasks. Use the following retrieved context to answer the question. ")
	sb.WriteString("Do not start the answer with 'According to the provided context'. ")
	sb.WriteString("Consider the previous conversation when relevant, but ensure your answer is primarily based on the retrieved context. ")
	sb.WriteString("If the answer is not present in the provided context, just say so. Ensure that the answer is strictly based on the context given, ")
	sb.WriteString("without inferring or making assumptions. Be helpful but concise. Do not be rude. While answering, you don't need to repeat that ")
	sb.WriteString("you are answering based on the context.\n\n")
	fmt.Fprintf(&sb, "Previous conversation:\n%s\n\n", history)
	fmt.Fprintf(&sb, "Retrieved context:\n%s", BuildContext(results))
	return sb.String()
}

// BuildContext renders retrieved chunks for inclusion in the prompt.
func BuildContext(results []confrag.SearchResult) string {
	if len(results) == 0 {
		return "No relevant context found."
	}

	var sb strings.Builder
	sb.WriteString("<documents>\n")
	for i, result := range results {
		title := result.Chunk.Title
		if title == "" {
			title = result.Chunk.SourceURL
		}
		sb.WriteString("<document>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<title>%s</title>\n", title)
		fmt.Fprintf(&sb, "<source>%s</source>\n", result.Chunk.SourceURL)
		fmt.Fprintf(&sb, "<content>%s</content>\n", result.Chunk.Content)
		sb.WriteString("</document>\n")
	}
	sb.WriteString("</documents>")
	return sb.String()
}
