package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// Meta fetches watch page metadata and prints it as JSON.
func (r *Runner) Meta(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return cli.Exit(`usage: taskboard meta "https://www.youtube.com/watch?v=..."`, exitUsage)
	}

	meta, err := r.scraper.FetchMeta(ctx, url)
	if err != nil {
		return cli.Exit(err.Error(), exitRuntime)
	}

	return r.writeJSON(meta, true)
}

// Transcript fetches captions and writes the cleaned text.
func (r *Runner) Transcript(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return cli.Exit("usage: taskboard transcript <watch-url> [--lang en] [--out path]", exitUsage)
	}

	lang := cmd.String("lang")
	if lang == "" {
		lang = r.config.Scraper.Language
	}

	transcript, err := r.scraper.FetchTranscript(ctx, url, lang)
	if err != nil {
		return cli.Exit(err.Error(), exitRuntime)
	}

	if outPath := cmd.String("out"); outPath != "" {
		if err := os.WriteFile(outPath, []byte(transcript), 0644); err != nil {
			return cli.Exit(fmt.Sprintf("failed to write transcript: %v", err), exitRuntime)
		}
		return r.writePlain("%s\n", outPath)
	}

	return r.writePlain("%s\n", transcript)
}
