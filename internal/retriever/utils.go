package retriever

import (
	"fmt"
	"slices"
	"strings"

	"codeberg.org/guidebot/server/guidebot/content"
	"codeberg.org/guidebot/server/internal/responsecache"
)

const (
	defaultTopK       = 5
	maxExcerptLen     = 280
	maxContextBodyLen = 2000
	noResultsResponse = "I could not find guidance on that topic. Please contact your care team for advice."
)

// kind filters change the answer, so they are folded into the cache key
func cacheKey(query string, kinds []content.Kind) string {
	if len(kinds) == 0 {
		return query
	}

	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}

	slices.Sort(names)
	names = slices.Compact(names)

	return query + " [kinds:" + strings.Join(names, ",") + "]"
}

func buildSources(items []content.Item, scores map[string]float64) []responsecache.Source {
	sources := make([]responsecache.Source, 0, len(items))

	for _, item := range items {
		sources = append(sources, responsecache.Source{
			ID:    item.ID,
			Kind:  string(item.Kind),
			Title: item.Title,
			URL:   item.URL,
			Score: scores[item.ID],
		})
	}

	return sources
}

func nonNilSources(sources []responsecache.Source) []responsecache.Source {
	if sources == nil {
		return []responsecache.Source{}
	}

	return sources
}

func extractiveAnswer(items []content.Item) string {
	var b strings.Builder

	b.WriteString("Here is what our guidance says:\n")

	for _, item := range items {
		fmt.Fprintf(&b, "\n- %s: %s", item.Title, truncate(collapse(item.Body), maxExcerptLen))
	}

	return b.String()
}

func buildSystemPrompt() string {
	const prompt = `You are a patient-guidance assistant for a hospital.
Answer the patient's question using ONLY the numbered guidance provided.
Rules:
- Be brief, warm and plain-spoken; avoid medical jargon
- If the guidance does not answer the question, say so and suggest contacting the care team
- Never give a diagnosis or change medication instructions
- Do not mention the numbering or that you were given documents`

	return prompt
}

func buildUserPrompt(query string, items []content.Item) string {
	var b strings.Builder

	b.WriteString("Guidance:\n")

	for i, item := range items {
		fmt.Fprintf(&b, "\n[%d] %s (%s)\n%s\n", i+1, item.Title, item.Kind, truncate(item.Body, maxContextBodyLen))
	}

	fmt.Fprintf(&b, "\nPatient question: %s", query)

	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	return string(runes[:maxLen]) + "..."
}
