package confrag

import (
	"fmt"
	"strings"
)

// DefaultHistoryWindow is how many recent turns are included in prompts.
const DefaultHistoryWindow = 5

// Turn is one question/answer exchange in a chat session.
type Turn struct {
	Question string
	Answer   string
}

// Session holds the conversation history of one interactive chat session.
// It is owned by the caller, lives only in process memory, and is mutated
// by a single REPL loop; no synchronization is provided.
type Session struct {
	Turns []Turn
}

// Add appends a completed turn to the session.
func (s *Session) Add(question, answer string) {
	s.Turns = append(s.Turns, Turn{Question: question, Answer: answer})
}

// Clear discards all history.
func (s *Session) Clear() {
	s.Turns = nil
}

// Recent returns up to n of the most recent turns, oldest first.
func (s *Session) Recent(n int) []Turn {
	if n <= 0 || len(s.Turns) <= n {
		return s.Turns
	}
	return s.Turns[len(s.Turns)-n:]
}

// FormatHistory renders turns for inclusion in a prompt.
// An empty history renders as "No previous conversation.".
func FormatHistory(turns []Turn) string {
	if len(turns) == 0 {
		return "No previous conversation."
	}
	var sb strings.Builder
	for i, turn := range turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Human: %s\nAssistant: %s", turn.Question, turn.Answer)
	}
	return sb.String()
}
