package main

import (
	"fmt"

	"github.com/asjoberg/confrag"
	"github.com/asjoberg/confrag/ingest"
)

// Run executes the load command.
func (c *LoadCmd) Run(deps *Dependencies) error {
	if (c.Dir == "") == (len(c.URL) == 0) {
		fmt.Fprintln(deps.Stderr, "error: provide exactly one of --dir or --url")
		return confrag.Errorf(confrag.EINVALID, "provide exactly one of --dir or --url")
	}

	var result *ingest.Result
	var err error
	if c.Dir != "" {
		result, err = deps.Loader.LoadExport(deps.Ctx, c.Dir)
	} else {
		result, err = deps.Loader.LoadURLs(deps.Ctx, c.URL)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", confrag.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Loaded %d chunks from %d documents\n", result.Chunks, result.Documents)
	return nil
}
