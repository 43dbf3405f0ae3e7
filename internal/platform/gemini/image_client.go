package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/vedasmart/deck-api/internal/config"
	"github.com/vedasmart/deck-api/internal/generation"
)

// Fixed qualifiers appended to every image prompt to bias toward a
// consistent labelled-diagram style. The subject is interpolated into the
// suffix.
const imagePromptSuffix = ". Detailed, professional educational diagram, " +
	"high-quality, clear labels, white background, suitable for Class 10 %s students."

// imageAspectRatio is the fixed aspect ratio requested for every diagram.
const imageAspectRatio = "16:9"

// dataURIPrefix marks returned payloads as inline PNG.
const dataURIPrefix = "data:image/png;base64,"

// ImageClient implements generation.ImageGenerator using a Gemini image
// model. Each call issues a single generation request and returns the first
// inline image payload as a data URI.
type ImageClient struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// NewImageClient creates an ImageClient from the provided dependencies.
func NewImageClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*ImageClient, error) {
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", generation.ErrInvalidConfig)
	}
	if cfg.ImageModel == "" {
		return nil, fmt.Errorf("%w: image model cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &ImageClient{
		logger: logger,
		client: client,
		model:  cfg.ImageModel,
	}, nil
}

// GenerateImage implements generation.ImageGenerator.
func (c *ImageClient) GenerateImage(ctx context.Context, prompt, subject string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("%w: image prompt cannot be empty", generation.ErrInvalidConfig)
	}

	enhanced := enhancePrompt(prompt, subject)
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: enhanced}},
		Role:  genai.RoleUser,
	}}
	genConfig := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: imageAspectRatio},
	}

	c.logger.DebugContext(ctx, "requesting slide diagram",
		"model", c.model,
		"prompt_length", len(enhanced))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, genConfig)
	if err != nil {
		return "", classifyProviderError(err)
	}

	image, err := firstInlineImage(resp)
	if err != nil {
		return "", err
	}

	c.logger.DebugContext(ctx, "slide diagram generated", "image_bytes", len(image))
	return dataURIPrefix + base64.StdEncoding.EncodeToString(image), nil
}

// enhancePrompt appends the fixed quality qualifiers; deterministic, same
// qualifiers every call.
func enhancePrompt(prompt, subject string) string {
	return prompt + fmt.Sprintf(imagePromptSuffix, subject)
}

// firstInlineImage scans the response candidates for the first inline image
// payload. The provider may legitimately return none (safety filtering,
// empty generation), which is reported distinctly from transport failures.
func firstInlineImage(resp *genai.GenerateContentResponse) ([]byte, error) {
	if resp == nil {
		return nil, generation.ErrNoImageGenerated
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}
	return nil, generation.ErrNoImageGenerated
}
