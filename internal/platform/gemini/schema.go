package gemini

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/vedasmart/deck-api/internal/domain"
	"github.com/vedasmart/deck-api/internal/generation"
)

// Wire types mirroring the JSON the content model is asked to produce.
// Each slide entry declares its own type and carries only the fields
// relevant to that type.

type deckSchema struct {
	ChapterTitle string        `json:"chapterTitle"`
	Subject      string        `json:"subject"`
	Theme        themeSchema   `json:"theme"`
	Slides       []slideSchema `json:"slides"`
}

type themeSchema struct {
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	TextColor       string `json:"textColor"`
	BackgroundColor string `json:"backgroundColor"`
	AccentColor     string `json:"accentColor"`
}

type slideSchema struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Content     string      `json:"content,omitempty"`
	KeyPoints   []string    `json:"keyPoints,omitempty"`
	ImagePrompt string      `json:"imagePrompt,omitempty"`
	QuizData    *quizSchema `json:"quizData,omitempty"`
}

type quizSchema struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// deckResponseSchema is the output schema sent with every content request.
// The provider is a non-deterministic model; constraining its output shape
// is the only reliability mechanism against malformed generations.
func deckResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"chapterTitle": {Type: genai.TypeString},
			"subject":      {Type: genai.TypeString},
			"theme": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"primaryColor":    {Type: genai.TypeString},
					"secondaryColor":  {Type: genai.TypeString},
					"textColor":       {Type: genai.TypeString},
					"backgroundColor": {Type: genai.TypeString},
					"accentColor":     {Type: genai.TypeString},
				},
				Required: []string{
					"primaryColor", "secondaryColor", "textColor",
					"backgroundColor", "accentColor",
				},
			},
			"slides": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":    {Type: genai.TypeString},
						"type":  {Type: genai.TypeString, Enum: []string{"TITLE", "CONTENT", "QUIZ"}},
						"title": {Type: genai.TypeString},
						"content": {
							Type: genai.TypeString,
						},
						"keyPoints": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
						"imagePrompt": {Type: genai.TypeString},
						"quizData": {
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"question":      {Type: genai.TypeString},
								"options":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
								"correctAnswer": {Type: genai.TypeInteger},
								"explanation":   {Type: genai.TypeString},
							},
							Required: []string{"question", "options", "correctAnswer", "explanation"},
						},
					},
					Required: []string{"id", "type", "title"},
				},
			},
		},
		Required: []string{"chapterTitle", "subject", "slides", "theme"},
	}
}

// decodeDeck parses the model's JSON response into a validated deck.
// Any parse or validation failure is an invalid-response error; these are
// provider contract violations and are never retried.
func decodeDeck(text string) (*domain.ChapterContent, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty response body", generation.ErrInvalidResponse)
	}

	var raw deckSchema
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	deck, err := raw.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	if err := deck.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	return deck, nil
}

func (d deckSchema) toDomain() (*domain.ChapterContent, error) {
	slides := make([]domain.Slide, 0, len(d.Slides))
	for i, s := range d.Slides {
		slide, err := s.toDomain()
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}
		slides = append(slides, slide)
	}

	return &domain.ChapterContent{
		ChapterTitle: d.ChapterTitle,
		Subject:      d.Subject,
		Theme: domain.ThemeConfig{
			PrimaryColor:    d.Theme.PrimaryColor,
			SecondaryColor:  d.Theme.SecondaryColor,
			TextColor:       d.Theme.TextColor,
			BackgroundColor: d.Theme.BackgroundColor,
			AccentColor:     d.Theme.AccentColor,
		},
		Slides: slides,
	}, nil
}

func (s slideSchema) toDomain() (domain.Slide, error) {
	switch domain.SlideType(s.Type) {
	case domain.SlideTypeTitle:
		return &domain.TitleSlide{SlideID: s.ID, SlideTitle: s.Title}, nil
	case domain.SlideTypeContent:
		return &domain.ContentSlide{
			SlideID:     s.ID,
			SlideTitle:  s.Title,
			Body:        s.Content,
			KeyPoints:   s.KeyPoints,
			ImagePrompt: s.ImagePrompt,
		}, nil
	case domain.SlideTypeQuiz:
		if s.QuizData == nil {
			return nil, fmt.Errorf("quiz slide %q missing quizData", s.ID)
		}
		return &domain.QuizSlide{
			SlideID:    s.ID,
			SlideTitle: s.Title,
			Quiz: domain.QuizData{
				Question:      s.QuizData.Question,
				Options:       s.QuizData.Options,
				CorrectAnswer: s.QuizData.CorrectAnswer,
				Explanation:   s.QuizData.Explanation,
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown slide type %q", s.Type)
	}
}
