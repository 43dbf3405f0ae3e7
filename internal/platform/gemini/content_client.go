package gemini

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"text/template"

	"google.golang.org/genai"

	"github.com/vedasmart/deck-api/internal/config"
	"github.com/vedasmart/deck-api/internal/domain"
	"github.com/vedasmart/deck-api/internal/generation"
)

//go:embed prompt.tmpl
var defaultPromptTemplate string

// promptData is the data passed to the deck prompt template.
type promptData struct {
	StyleProvided bool
}

// ContentClient implements generation.ContentGenerator using the Gemini API.
// It sends the chapter document (and optional style sample) as inline parts
// together with the deck prompt and a strict response schema, and parses the
// schema-constrained JSON reply into a domain deck.
type ContentClient struct {
	logger         *slog.Logger
	client         *genai.Client
	model          string
	promptTemplate *template.Template
}

// NewContentClient creates a ContentClient from the provided dependencies.
// When cfg.PromptTemplatePath is set, the template is read from disk instead
// of the embedded default.
func NewContentClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*ContentClient, error) {
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", generation.ErrInvalidConfig)
	}
	if cfg.ContentModel == "" {
		return nil, fmt.Errorf("%w: content model cannot be empty", generation.ErrInvalidConfig)
	}

	templateContent := defaultPromptTemplate
	if cfg.PromptTemplatePath != "" {
		data, err := os.ReadFile(cfg.PromptTemplatePath)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				generation.ErrInvalidConfig, cfg.PromptTemplatePath, err)
		}
		templateContent = string(data)
	}

	promptTemplate, err := template.New("deck").Parse(templateContent)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &ContentClient{
		logger:         logger,
		client:         client,
		model:          cfg.ContentModel,
		promptTemplate: promptTemplate,
	}, nil
}

// GenerateDeck implements generation.ContentGenerator.
func (c *ContentClient) GenerateDeck(
	ctx context.Context,
	chapter generation.Document,
	style *generation.Document,
) (*domain.ChapterContent, error) {
	if len(chapter.Data) == 0 {
		return nil, fmt.Errorf("%w: chapter document cannot be empty", generation.ErrInvalidConfig)
	}

	prompt, err := c.buildPrompt(style != nil)
	if err != nil {
		return nil, err
	}

	parts := []*genai.Part{
		{InlineData: &genai.Blob{Data: chapter.Data, MIMEType: chapter.MIMEType}},
		{Text: prompt},
	}
	if style != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{Data: style.Data, MIMEType: style.MIMEType},
		})
	}

	contents := []*genai.Content{{Parts: parts, Role: genai.RoleUser}}
	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   deckResponseSchema(),
	}

	c.logger.InfoContext(ctx, "requesting deck structure",
		"model", c.model,
		"chapter_bytes", len(chapter.Data),
		"style_provided", style != nil)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, genConfig)
	if err != nil {
		return nil, classifyProviderError(err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	deck, err := decodeDeck(text)
	if err != nil {
		c.logger.ErrorContext(ctx, "content response failed validation", "error", err)
		return nil, err
	}

	c.logger.InfoContext(ctx, "deck structure generated",
		"chapter_title", deck.ChapterTitle,
		"subject", deck.Subject,
		"slide_count", len(deck.Slides))

	return deck, nil
}

func (c *ContentClient) buildPrompt(styleProvided bool) (string, error) {
	var buf bytes.Buffer
	if err := c.promptTemplate.Execute(&buf, promptData{StyleProvided: styleProvided}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// responseText extracts the concatenated text parts of the first candidate.
// A response without usable text is a contract violation, not a transport
// failure.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrInvalidResponse)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	text := ""
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text += part.Text
		}
	}
	return text, nil
}
