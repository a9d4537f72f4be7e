package ingest

import (
	"context"
	"sync"

	"livingledger/pkg/llm"
)

// maxConcurrentStories caps the story fan-out so a large upload cannot
// flood the upstream API.
const maxConcurrentStories = 8

// GenerateStories issues one generation per prompt concurrently and waits
// for all of them. results[i] always belongs to prompts[i]; a failed call
// degrades that row alone to the fallback story.
func GenerateStories(ctx context.Context, g llm.Generator, prompts []string) []llm.Result {
	results := make([]llm.Result, len(prompts))

	sem := make(chan struct{}, maxConcurrentStories)
	var wg sync.WaitGroup

	for i, prompt := range prompts {
		wg.Add(1)
		go func(i int, prompt string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = llm.Tell(ctx, g, prompt)
		}(i, prompt)
	}

	wg.Wait()
	return results
}
