package domain

import "fmt"

// SlideType identifies the kind of a slide.
type SlideType string

// The three slide kinds a deck may contain.
const (
	SlideTypeTitle   SlideType = "TITLE"
	SlideTypeContent SlideType = "CONTENT"
	SlideTypeQuiz    SlideType = "QUIZ"
)

// QuizOptionCount is the number of answer options every quiz slide carries.
const QuizOptionCount = 4

// ThemeConfig is the five-color palette applied uniformly across rendering
// and export. All five colors are required; consumers must never substitute
// a default for a missing one.
type ThemeConfig struct {
	PrimaryColor    string
	SecondaryColor  string
	TextColor       string
	BackgroundColor string
	AccentColor     string
}

// Validate checks that all five theme colors are present.
func (t ThemeConfig) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"primaryColor", t.PrimaryColor},
		{"secondaryColor", t.SecondaryColor},
		{"textColor", t.TextColor},
		{"backgroundColor", t.BackgroundColor},
		{"accentColor", t.AccentColor},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingThemeColor, f.name)
		}
	}
	return nil
}

// Slide is the closed union over the three slide kinds. The unexported
// method seals the interface so every consumption site can switch over the
// three concrete types exhaustively.
type Slide interface {
	// ID returns the slide's stable identifier, unique within a deck.
	ID() string

	// Title returns the slide's display title.
	Title() string

	// Type returns the slide's kind tag.
	Type() SlideType

	// Validate checks the slide's own invariants.
	Validate() error

	sealed()
}

// TitleSlide opens a deck. It carries only a title; the subject is tracked
// at deck level.
type TitleSlide struct {
	SlideID    string
	SlideTitle string
}

func (s *TitleSlide) ID() string      { return s.SlideID }
func (s *TitleSlide) Title() string   { return s.SlideTitle }
func (s *TitleSlide) Type() SlideType { return SlideTypeTitle }
func (s *TitleSlide) sealed()         {}

// Validate checks the title slide's invariants.
func (s *TitleSlide) Validate() error {
	return validateCommon(s.SlideID, s.SlideTitle)
}

// ContentSlide conveys explanatory material plus an optional diagram. A
// slide with an image prompt but no image is a valid pending/failed-image
// state, never an error for the deck as a whole.
type ContentSlide struct {
	SlideID    string
	SlideTitle string
	Body       string
	KeyPoints  []string

	// ImagePrompt, when non-empty, describes the diagram to generate.
	ImagePrompt string

	// Image holds the generated diagram as a data URI. Empty until image
	// generation succeeds for this slide.
	Image string
}

func (s *ContentSlide) ID() string      { return s.SlideID }
func (s *ContentSlide) Title() string   { return s.SlideTitle }
func (s *ContentSlide) Type() SlideType { return SlideTypeContent }
func (s *ContentSlide) sealed()         {}

// Validate checks the content slide's invariants.
func (s *ContentSlide) Validate() error {
	return validateCommon(s.SlideID, s.SlideTitle)
}

// NeedsImage reports whether the slide wants a diagram it does not yet have.
func (s *ContentSlide) NeedsImage() bool {
	return s.ImagePrompt != "" && s.Image == ""
}

// AttachImage records the generated diagram on the slide.
func (s *ContentSlide) AttachImage(dataURI string) {
	s.Image = dataURI
}

// HasImage reports whether a diagram is attached.
func (s *ContentSlide) HasImage() bool {
	return s.Image != ""
}

// QuizData is the question payload of a quiz slide: a question, exactly four
// options, the index of the correct option, and an explanation.
type QuizData struct {
	Question      string
	Options       []string
	CorrectAnswer int
	Explanation   string
}

// Validate checks the quiz payload's invariants. The four-option count is
// enforced here rather than trusted from the provider schema.
func (q QuizData) Validate() error {
	if q.Question == "" {
		return ErrEmptyQuizQuestion
	}
	if len(q.Options) != QuizOptionCount {
		return fmt.Errorf("%w: got %d", ErrInvalidQuizOptions, len(q.Options))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("%w: %d", ErrInvalidCorrectAnswer, q.CorrectAnswer)
	}
	if q.Explanation == "" {
		return ErrEmptyQuizExplanation
	}
	return nil
}

// QuizSlide poses a four-option question with one correct answer.
type QuizSlide struct {
	SlideID    string
	SlideTitle string
	Quiz       QuizData
}

func (s *QuizSlide) ID() string      { return s.SlideID }
func (s *QuizSlide) Title() string   { return s.SlideTitle }
func (s *QuizSlide) Type() SlideType { return SlideTypeQuiz }
func (s *QuizSlide) sealed()         {}

// Validate checks the quiz slide's invariants, including its payload.
func (s *QuizSlide) Validate() error {
	if err := validateCommon(s.SlideID, s.SlideTitle); err != nil {
		return err
	}
	return s.Quiz.Validate()
}

func validateCommon(id, title string) error {
	if id == "" {
		return ErrEmptySlideID
	}
	if title == "" {
		return ErrEmptySlideTitle
	}
	return nil
}

// ChapterContent is the complete generated deck: chapter title, subject,
// theme, and the ordered slide sequence. It is created wholesale by the
// content provider, mutated only to attach per-slide images during the
// image-generation phase, and read-only after the pipeline reaches Ready.
type ChapterContent struct {
	ChapterTitle string
	Subject      string
	Theme        ThemeConfig
	Slides       []Slide
}

// Validate checks the deck's invariants: non-empty metadata, a complete
// theme, at least one slide, and per-slide validity with unique IDs.
func (c *ChapterContent) Validate() error {
	if c.ChapterTitle == "" {
		return ErrEmptyChapterTitle
	}
	if c.Subject == "" {
		return ErrEmptySubject
	}
	if err := c.Theme.Validate(); err != nil {
		return err
	}
	if len(c.Slides) == 0 {
		return ErrEmptyDeck
	}

	seen := make(map[string]struct{}, len(c.Slides))
	for i, slide := range c.Slides {
		if err := slide.Validate(); err != nil {
			return fmt.Errorf("slide %d: %w", i, err)
		}
		if _, dup := seen[slide.ID()]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateSlideID, slide.ID())
		}
		seen[slide.ID()] = struct{}{}
	}
	return nil
}

// ContentSlides returns the deck's content slides in order.
func (c *ChapterContent) ContentSlides() []*ContentSlide {
	var out []*ContentSlide
	for _, slide := range c.Slides {
		if cs, ok := slide.(*ContentSlide); ok {
			out = append(out, cs)
		}
	}
	return out
}

// SlideByID returns the slide with the given identifier, or nil.
func (c *ChapterContent) SlideByID(id string) Slide {
	for _, slide := range c.Slides {
		if slide.ID() == id {
			return slide
		}
	}
	return nil
}
