package llm

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAI works against api.openai.com or any OpenAI-compatible gateway
// when baseURL is set.
func NewOpenAI(apiKey, baseURL, model string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, parts []Part, systemInstruction string) (Response, error) {
	var msgs []openai.ChatCompletionMessage
	if systemInstruction != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemInstruction,
		})
	}

	var mc []openai.ChatMessagePart
	for _, p := range parts {
		if p.IsImage() {
			dataURL := fmt.Sprintf("data:%s;base64,%s", p.ImageMIME, base64.StdEncoding.EncodeToString(p.ImageData))
			mc = append(mc, openai.ChatMessagePart{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
			})
			continue
		}
		mc = append(mc, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: p.Text,
		})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:         openai.ChatMessageRoleUser,
		MultiContent: mc,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: msgs,
	})
	if err != nil {
		return Response{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("no completion choices returned")
	}
	return Response{Content: resp.Choices[0].Message.Content, Model: c.model}, nil
}
