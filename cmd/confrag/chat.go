package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/asjoberg/confrag"
	"github.com/charmbracelet/lipgloss"
)

var (
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// Run executes the chat command: an interactive REPL over the chunk store.
func (c *ChatCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "Enter your questions below. Type 'exit' to quit, 'clear' to clear chat history, 'history' to view chat history.")

	session := &confrag.Session{}
	userLabel := userStyle.Render("[User]:")
	assistantLabel := assistantStyle.Render("[Assistant]:")

	scanner := bufio.NewScanner(deps.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprintf(deps.Stdout, "%s ", userLabel)
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit":
			return nil
		case "clear":
			session.Clear()
			fmt.Fprintln(deps.Stdout, "Chat history cleared.")
			continue
		case "history":
			printHistory(deps, session)
			continue
		}

		fmt.Fprintf(deps.Stdout, "%s ", assistantLabel)
		answer, err := deps.Asker.Ask(deps.Ctx, session, line, func(token string) {
			fmt.Fprint(deps.Stdout, token)
		})
		fmt.Fprintln(deps.Stdout)
		if err != nil {
			// One bad turn must not kill the session.
			fmt.Fprintf(deps.Stderr, "Sorry, an error occurred: %s\n", confrag.ErrorMessage(err))
			continue
		}
		fmt.Fprintln(deps.Stdout)

		session.Add(line, answer)
	}

	return scanner.Err()
}

func printHistory(deps *Dependencies, session *confrag.Session) {
	if len(session.Turns) == 0 {
		fmt.Fprintln(deps.Stdout, "No chat history available.")
		return
	}

	fmt.Fprintln(deps.Stdout, "\n--- Chat History ---")
	for i, turn := range session.Turns {
		fmt.Fprintf(deps.Stdout, "%d. [User]: %s\n", i+1, turn.Question)
		fmt.Fprintf(deps.Stdout, "%d. [Assistant]: %s\n", i+1, turn.Answer)
	}
	fmt.Fprintln(deps.Stdout, "--- End History ---")
	fmt.Fprintln(deps.Stdout)
}
