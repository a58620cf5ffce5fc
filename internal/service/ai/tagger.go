// Package ai tags photographs with a multimodal LLM. Experimental.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// TagResponse is the structured output the model is constrained to.
type TagResponse struct {
	Explanation    string   `json:"explanation"`
	Tags           []string `json:"tags"`
	AdditionalTags []string `json:"additional_tags"`
}

// Tagger produces tags for a JPEG image.
type Tagger interface {
	TagImage(ctx context.Context, image []byte) (*TagResponse, error)
}

// SystemPrompt builds the tagging instruction around the allowed label
// vocabulary.
func SystemPrompt(labels []string) string {
	return fmt.Sprintf(`You are an agent specialized in tagging photographs.

You will be provided with an image, and your goal is to tag the depicted scene with keywords.
You can give more than one keyword to the photograph.

Keywords should be concise and in lower case.

Possible keywords are:
 - %s

Return:

- List of found keywords
- An explanation of what you did
- A list of additional keywords you may find relevant
`, strings.Join(labels, "\n - "))
}

// GenAITagger tags images through the Google GenAI API.
type GenAITagger struct {
	client       *genai.Client
	model        string
	systemPrompt string
}

// NewGenAITagger creates a tagger for the given model and label vocabulary.
func NewGenAITagger(ctx context.Context, apiKey, model string, labels []string) (*GenAITagger, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAITagger{
		client:       client,
		model:        model,
		systemPrompt: SystemPrompt(labels),
	}, nil
}

// TagImage sends a JPEG to the model and decodes the structured response.
func (t *GenAITagger) TagImage(ctx context.Context, image []byte) (*TagResponse, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, "image/jpeg"),
		}, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(t.systemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    tagResponseSchema(),
		MaxOutputTokens:   300,
		TopP:              genai.Ptr[float32](0.1),
	}

	result, err := t.client.Models.GenerateContent(ctx, t.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("GenAI tagging failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return nil, fmt.Errorf("empty model response")
	}

	var resp TagResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	return &resp, nil
}

func tagResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"explanation": {Type: genai.TypeString},
			"tags": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"additional_tags": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"explanation", "tags", "additional_tags"},
	}
}
