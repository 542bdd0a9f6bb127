package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/asjoberg/confrag"
	"github.com/asjoberg/confrag/crawl"
	"github.com/asjoberg/confrag/gemini"
	"github.com/asjoberg/confrag/htmltomarkdown"
	confraghttp "github.com/asjoberg/confrag/http"
	"github.com/asjoberg/confrag/ingest"
	confragslog "github.com/asjoberg/confrag/slog"
	"github.com/asjoberg/confrag/sqlite"
	"github.com/asjoberg/confrag/trafilatura"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config overrides the environment-derived configuration. Set before
	// calling Run(); nil reads the environment.
	Config *Config

	// SQLite database used by the chunk store.
	DB *sqlite.DB

	// Chunk service for end-to-end testing.
	ChunkService confrag.ChunkService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg := m.Config
	if cfg == nil {
		var err error
		if cfg, err = ConfigFromEnv(); err != nil {
			return err
		}
	}

	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("confrag"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'confrag --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	switch cmd {
	case "download":
		if cfg.BaseURL == "" {
			fmt.Fprintln(stderr, "CONFLUENCE_BASE_URL environment variable not set")
			return fmt.Errorf("CONFLUENCE_BASE_URL not set")
		}

		token := cfg.APIToken
		if token == "" {
			if token, err = promptToken(stdin, stderr); err != nil {
				return err
			}
		}

		client := confraghttp.NewClient(cfg.BaseURL, token,
			confraghttp.WithPageSize(cfg.PageSize),
			confraghttp.WithLimiter(crawl.NewDelayLimiter(cfg.RequestDelay)),
		)
		deps.Content = confragslog.NewLoggingContentService(client, deps.Logger)
		deps.Converter = htmltomarkdown.NewConverter()

	case "load", "search", "chat":
		m.DB = sqlite.NewDB(cfg.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set CONFRAG_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
		}
		defer m.Close()

		if cfg.GeminiAPIKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		embedder := gemini.NewEmbedder(client,
			gemini.WithEmbeddingsModel(cfg.EmbeddingsModel),
			gemini.WithDimensions(cfg.EmbeddingDimensions),
		)
		m.ChunkService = sqlite.NewChunkService(m.DB, embedder)
		deps.Chunks = confragslog.NewLoggingChunkService(m.ChunkService, deps.Logger)

		switch cmd {
		case "load":
			var opts []confraghttp.FetcherOption
			if cfg.APIToken != "" {
				opts = append(opts, confraghttp.WithHeader("Authorization", "Bearer "+cfg.APIToken))
			}
			fetcher := confraghttp.NewFetcher(opts...)
			defer fetcher.Close()

			deps.Loader = &ingest.Loader{
				Chunks:    deps.Chunks,
				Splitter:  confrag.NewSplitter(confrag.DefaultChunkSize, confrag.DefaultChunkOverlap),
				Fetcher:   fetcher,
				Extractor: trafilatura.NewExtractor(),
				Converter: htmltomarkdown.NewConverter(),
				Logger:    deps.Logger,
			}
		case "chat":
			deps.Asker = gemini.NewAsker(client, deps.Chunks,
				gemini.WithChatModel(cfg.ChatModel),
				gemini.WithTopK(cfg.TopK),
			)
		}
	}

	return kongCtx.Run(deps)
}

// promptToken asks for the Confluence API token interactively when it is
// not present in the environment.
func promptToken(stdin io.Reader, stderr io.Writer) (string, error) {
	fmt.Fprint(stderr, "Enter Confluence API token: ")

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading API token: %w", err)
	}

	token := strings.TrimSpace(line)
	if token == "" {
		return "", confrag.Errorf(confrag.EINVALID, "API token required")
	}
	return token, nil
}
