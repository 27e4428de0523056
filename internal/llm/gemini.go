package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

const placeholderAPIKey = "YOUR_GEMINI_API_KEY_HERE"

func NewGemini(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" || apiKey == placeholderAPIKey {
		return nil, fmt.Errorf("gemini api key is missing or still the placeholder, set GEMINI_API_KEY")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, parts []Part, systemInstruction string) (Response, error) {
	var gparts []*genai.Part
	for _, p := range parts {
		if p.IsImage() {
			gparts = append(gparts, genai.NewPartFromBytes(p.ImageData, p.ImageMIME))
			continue
		}
		gparts = append(gparts, genai.NewPartFromText(p.Text))
	}

	cfg := &genai.GenerateContentConfig{}
	if systemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	contents := []*genai.Content{genai.NewContentFromParts(gparts, genai.RoleUser)}
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return Response{}, fmt.Errorf("gemini generation failed: %w", err)
	}
	text := result.Text()
	if text == "" {
		return Response{}, fmt.Errorf("gemini returned empty response")
	}
	return Response{Content: text, Model: c.model}, nil
}
