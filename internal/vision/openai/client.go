// Package openai implements the vision client using OpenAI chat completions.
package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"photomemory-backend/internal/vision"
)

// maxOutputTokens bounds the model's answer length in tokens, not characters.
const maxOutputTokens = 1500

// Client calls OpenAI's multimodal chat completions API.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient constructs a Client for the given API key and model.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("VISION_MODEL is required")
	}
	return &Client{api: openai.NewClient(apiKey), model: model}, nil
}

// Describe sends the image and prompt as a single-turn multimodal message and
// returns the raw model text. There is no retry; failures surface as
// *vision.ModelError.
func (c *Client) Describe(ctx context.Context, img vision.Image, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: maxOutputTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL(img),
							Detail: openai.ImageURLDetailAuto,
						},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
				},
			},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &vision.ModelError{Provider: "openai", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &vision.ModelError{Provider: "openai", Err: fmt.Errorf("no choices in response")}
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", &vision.ModelError{Provider: "openai", Err: fmt.Errorf("empty content in response")}
	}
	return content, nil
}

func dataURL(img vision.Image) string {
	mediaType := img.MediaType
	if mediaType == "" {
		mediaType = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(img.Data))
}
