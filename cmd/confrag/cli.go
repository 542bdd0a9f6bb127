package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/asjoberg/confrag"
	"github.com/asjoberg/confrag/ingest"
	"github.com/asjoberg/confrag/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Config *Config
	Logger *slog.Logger
	DB     *sqlite.DB

	// Wired per command in Main.Run.
	Content   confrag.ContentService
	Converter confrag.Converter
	Chunks    confrag.ChunkService
	Loader    *ingest.Loader
	Asker     confrag.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Download DownloadCmd `cmd:"" help:"Download a Confluence space to local JSON/text files"`
	Load     LoadCmd     `cmd:"" help:"Chunk and embed content into the vector store"`
	Search   SearchCmd   `cmd:"" help:"Search stored chunks by similarity"`
	Chat     ChatCmd     `cmd:"" help:"Interactive question answering over stored content"`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	Space string `arg:"" help:"Space key to download"`
	Out   string `short:"o" default:"output" help:"Base output directory"`
}

// LoadCmd is the "load" subcommand.
type LoadCmd struct {
	Dir string   `help:"Crawled space export directory to ingest"`
	URL []string `name:"url" help:"Web URL to ingest (repeatable)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Search query"`
	TopK  int    `arg:"" optional:"" help:"Number of results to return"`
	Space string `help:"Restrict results to a space"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}
