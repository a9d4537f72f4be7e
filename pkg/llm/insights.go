package llm

import (
	"encoding/json"
	"fmt"
)

// FallbackInsight is the single insight served when the oracle response
// cannot be parsed.
const FallbackInsight = "The Oracle's vision is cloudy... Try again later."

// ParseInsights extracts the insight list from a model response of the form
// {"insights": ["...", "..."]}, tolerating code fences around the JSON.
func ParseInsights(content string) ([]string, error) {
	content = cleanJSONResponse(content)

	var parsed struct {
		Insights []string `json:"insights"`
	}

	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse insights response: %w, content: %s", err, content)
	}

	if len(parsed.Insights) == 0 {
		return nil, fmt.Errorf("no insights in response")
	}

	return parsed.Insights, nil
}
