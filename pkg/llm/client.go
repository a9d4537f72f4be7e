package llm

import (
	"context"
	"log/slog"
	"strings"
)

// FallbackStory is returned in place of generated text whenever the
// storyteller backend is unreachable or misbehaves. Stories are creative
// content; a flaky upstream must never fail a request or abort a batch.
const FallbackStory = "The connection to the celestial Oracle was lost..."

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Result carries generated text together with a flag marking degraded
// (fallback) content, so callers and tests can tell the two apart without
// string-matching.
type Result struct {
	Text     string
	Degraded bool
}

// Tell runs prompt through g and absorbs any failure into the fallback line.
// A nil generator (no API key configured) degrades the same way.
func Tell(ctx context.Context, g Generator, prompt string) Result {
	if g == nil {
		return Result{Text: FallbackStory, Degraded: true}
	}

	text, err := g.Generate(ctx, prompt)
	if err != nil {
		slog.Error("error generating story", "error", err)
		return Result{Text: FallbackStory, Degraded: true}
	}

	return Result{Text: text}
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
