package dictionary

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"google.golang.org/genai"
)

const (
	defaultRegion = "europe-west1"
	defaultModel  = "gemini-2.5-flash"
)

const definePrompt = `Write short crossword clues for each of the following English words.

Answer with a JSON object mapping every word to a list of one to three clues:
{"word": ["clue", ...], ...}

Rules:
- A clue must not contain the word itself.
- Keep each clue under 60 characters.
- Answer ONLY with the JSON, no commentary or markdown.

Words:
`

// Definer supplies definitions for words that have none.
type Definer interface {
	Define(ctx context.Context, words []string) (map[string][]string, error)
}

// GeminiDefiner asks a Gemini model on Vertex AI to write clue definitions.
type GeminiDefiner struct {
	client    *genai.Client
	modelName string
}

// NewGeminiDefiner creates a client using Application Default Credentials.
func NewGeminiDefiner(ctx context.Context, projectID, region string) (*GeminiDefiner, error) {
	if region == "" {
		region = defaultRegion
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiDefiner{
		client:    client,
		modelName: defaultModel,
	}, nil
}

func (g *GeminiDefiner) Define(ctx context.Context, words []string) (map[string][]string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: definePrompt + strings.Join(words, "\n")}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.4)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	return parseDefinitions(resp.Text())
}

func parseDefinitions(text string) (map[string][]string, error) {
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}
	var defs map[string][]string
	if err := json.Unmarshal([]byte(text), &defs); err != nil {
		return nil, fmt.Errorf("parse definitions JSON: %w\nraw response: %s", err, text)
	}
	return defs, nil
}

// FillDefinitions asks definer for every undefined word in d, batchSize words
// per call. Definitions that repeat the word they define are discarded. It
// returns how many words received at least one definition.
func FillDefinitions(ctx context.Context, d Dictionary, definer Definer, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 50
	}
	undefined := d.Undefined()
	filled := 0
	for start := 0; start < len(undefined); start += batchSize {
		batch := undefined[start:min(start+batchSize, len(undefined))]
		defs, err := definer.Define(ctx, batch)
		if err != nil {
			return filled, fmt.Errorf("define batch at %d: %w", start, err)
		}
		for _, word := range batch {
			var kept []string
			for _, def := range defs[word] {
				if strings.Contains(strings.ToLower(def), word) {
					continue
				}
				kept = append(kept, def)
			}
			if len(kept) > 0 {
				d.add(word, 0, kept...)
				filled++
			}
		}
	}
	return filled, nil
}
