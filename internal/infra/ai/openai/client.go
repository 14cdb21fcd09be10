package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	domain "github.com/bryanwahyu/brand-banner/internal/domain/analysis"
	"github.com/bryanwahyu/brand-banner/internal/infra/ai/prompt"
)

// Options for the hosted API. Empty fields keep the library defaults.
type Options struct {
	APIKey     string
	BaseURL    string
	ChatModel  string
	ImageModel string
	ImageSize  string
}

// Client serves both brand suggestions and banner generation.
type Client struct {
	*openai.Client
	ChatModel  string
	ImageModel string
	ImageSize  string
}

func NewClient(opts Options) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	c := &Client{
		Client:     openai.NewClientWithConfig(cfg),
		ChatModel:  opts.ChatModel,
		ImageModel: opts.ImageModel,
		ImageSize:  opts.ImageSize,
	}
	if c.ChatModel == "" {
		c.ChatModel = openai.GPT3Dot5Turbo
	}
	if c.ImageModel == "" {
		c.ImageModel = openai.CreateImageModelDallE2
	}
	if c.ImageSize == "" {
		c.ImageSize = openai.CreateImageSize1024x1024
	}
	return c
}

// Suggest implements analysis.Suggester
func (c *Client) Suggest(ctx context.Context, content domain.PageContent) (domain.SuggestionList, error) {
	req := openai.ChatCompletionRequest{
		Model: c.ChatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(string(content))},
		},
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, &domain.SuggestionError{Err: fmt.Errorf("failed to create chat completion: %w", err)}
	}
	if len(resp.Choices) == 0 {
		return nil, &domain.SuggestionError{Err: errors.New("completion returned no choices")}
	}

	return domain.ParseSuggestions(resp.Choices[0].Message.Content), nil
}

// RequestBanner implements analysis.BannerRequester
func (c *Client) RequestBanner(ctx context.Context, brand string) (string, error) {
	req := openai.ImageRequest{
		Prompt:         prompt.GetBannerPrompt(brand),
		Model:          c.ImageModel,
		N:              1,
		Size:           c.ImageSize,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	}

	resp, err := c.CreateImage(ctx, req)
	if err != nil {
		return "", &domain.BannerError{Brand: brand, Err: fmt.Errorf("failed to create image: %w", err)}
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", &domain.BannerError{Brand: brand, Err: errors.New("image response carried no url")}
	}
	return resp.Data[0].URL, nil
}
