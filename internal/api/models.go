package api

import (
	"github.com/vedasmart/deck-api/internal/domain"
	"github.com/vedasmart/deck-api/internal/service"
	"github.com/vedasmart/deck-api/internal/viewer"
)

// CreateDeckResponse is returned when a generation request is accepted.
type CreateDeckResponse struct {
	SessionID string  `json:"session_id"`
	State     string  `json:"state"`
	Progress  float64 `json:"progress"`
}

// StatusResponse reports a session's generation state. The deck is present
// once the structure fetch has completed.
type StatusResponse struct {
	SessionID string        `json:"session_id"`
	State     string        `json:"state"`
	Progress  float64       `json:"progress"`
	Error     string        `json:"error,omitempty"`
	Warning   string        `json:"warning,omitempty"`
	Deck      *DeckResponse `json:"deck,omitempty"`
}

// DeckResponse is the client view of a generated deck. Quiz slides expose
// the question and options only; the answer key stays server-side until
// the slide is answered.
type DeckResponse struct {
	ChapterTitle string          `json:"chapter_title"`
	Subject      string          `json:"subject"`
	Theme        ThemeResponse   `json:"theme"`
	Slides       []SlideResponse `json:"slides"`
}

// ThemeResponse carries the deck's five-color palette.
type ThemeResponse struct {
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	TextColor       string `json:"text_color"`
	BackgroundColor string `json:"background_color"`
	AccentColor     string `json:"accent_color"`
}

// SlideResponse is the client view of a single slide. Fields beyond ID,
// type and title are populated per slide kind.
type SlideResponse struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`

	Content   string   `json:"content,omitempty"`
	KeyPoints []string `json:"key_points,omitempty"`
	Image     string   `json:"image,omitempty"`

	Quiz *QuizResponse `json:"quiz,omitempty"`
}

// QuizResponse is the answerable view of a quiz slide.
type QuizResponse struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// NavigateRequest moves the viewer one slide in either direction.
type NavigateRequest struct {
	Direction string `json:"direction" validate:"required,oneof=next prev"`
}

// NavigateResponse reports the viewer position after a navigation.
type NavigateResponse struct {
	Index int           `json:"index"`
	Moved bool          `json:"moved"`
	Slide SlideResponse `json:"slide"`
}

// AnswerRequest records an answer for a quiz slide.
type AnswerRequest struct {
	SlideID string `json:"slide_id" validate:"required"`
	Option  *int   `json:"option" validate:"required,min=0,max=3"`
}

// AnswerResponse reveals the outcome of an answered quiz slide.
type AnswerResponse struct {
	Selected    int    `json:"selected"`
	Correct     int    `json:"correct"`
	WasCorrect  bool   `json:"was_correct"`
	Explanation string `json:"explanation"`
}

func statusToResponse(id string, status service.Status) StatusResponse {
	resp := StatusResponse{
		SessionID: id,
		State:     string(status.State),
		Progress:  status.Progress,
		Error:     status.Error,
		Warning:   status.Warning,
	}
	if status.Deck != nil {
		deck := deckToResponse(status.Deck)
		resp.Deck = &deck
	}
	return resp
}

func deckToResponse(deck *domain.ChapterContent) DeckResponse {
	slides := make([]SlideResponse, 0, len(deck.Slides))
	for _, slide := range deck.Slides {
		slides = append(slides, slideToResponse(slide))
	}
	return DeckResponse{
		ChapterTitle: deck.ChapterTitle,
		Subject:      deck.Subject,
		Theme: ThemeResponse{
			PrimaryColor:    deck.Theme.PrimaryColor,
			SecondaryColor:  deck.Theme.SecondaryColor,
			TextColor:       deck.Theme.TextColor,
			BackgroundColor: deck.Theme.BackgroundColor,
			AccentColor:     deck.Theme.AccentColor,
		},
		Slides: slides,
	}
}

func slideToResponse(slide domain.Slide) SlideResponse {
	resp := SlideResponse{
		ID:    slide.ID(),
		Type:  string(slide.Type()),
		Title: slide.Title(),
	}
	switch v := slide.(type) {
	case *domain.ContentSlide:
		resp.Content = v.Body
		resp.KeyPoints = v.KeyPoints
		resp.Image = v.Image
	case *domain.QuizSlide:
		resp.Quiz = &QuizResponse{
			Question: v.Quiz.Question,
			Options:  v.Quiz.Options,
		}
	}
	return resp
}

func revealToResponse(reveal viewer.Reveal) AnswerResponse {
	return AnswerResponse{
		Selected:    reveal.Selected,
		Correct:     reveal.Correct,
		WasCorrect:  reveal.WasCorrect,
		Explanation: reveal.Explanation,
	}
}
