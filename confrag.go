// Package confrag provides a CLI-based RAG pipeline for Confluence spaces.
// It downloads all pages of a space over the Confluence REST API into local
// JSON/text files, chunks and embeds the content into a local vector-capable
// chunk store, and answers natural language questions grounded in the
// retrieved chunks.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, http/).
package confrag
