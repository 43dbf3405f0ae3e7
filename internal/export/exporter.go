// Package export renders a completed deck into a branded PowerPoint file.
// Every slide carries the diagonal wordmark watermark and the footer
// caption; quiz slides export the question and options only, never the
// correct answer or its explanation.
package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vedasmart/deck-api/internal/domain"
	"github.com/vedasmart/deck-api/internal/export/pptx"
)

// Branding text stamped onto every exported slide.
const (
	watermarkText = "VEDANTU"
	captionText   = "Vedantu - Smart Learning Solution"
)

// fileNameSuffix is appended to the sanitized chapter title.
const fileNameSuffix = "_Vedantu_Official.pptx"

// ContentType is the MIME type of the exported file.
const ContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// ErrEmptyDeck is returned when there is nothing to export.
var ErrEmptyDeck = errors.New("deck has no slides to export")

// Artifact is a finished export: the suggested download file name and the
// file bytes.
type Artifact struct {
	Filename string
	Data     []byte
}

// Exporter renders decks to .pptx artifacts. It is stateless and safe for
// concurrent use.
type Exporter struct {
	logger *slog.Logger
}

// NewExporter creates an Exporter.
func NewExporter(logger *slog.Logger) (*Exporter, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Exporter{logger: logger}, nil
}

// Export renders the deck and returns the artifact.
func (e *Exporter) Export(deck *domain.ChapterContent) (*Artifact, error) {
	if deck == nil || len(deck.Slides) == 0 {
		return nil, ErrEmptyDeck
	}

	pres := pptx.New()
	for _, slide := range deck.Slides {
		e.renderSlide(pres, deck.Theme, slide)
	}

	var buf bytes.Buffer
	if err := pres.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to assemble presentation: %w", err)
	}

	return &Artifact{
		Filename: Filename(deck.ChapterTitle),
		Data:     buf.Bytes(),
	}, nil
}

func (e *Exporter) renderSlide(pres *pptx.Presentation, theme domain.ThemeConfig, slide domain.Slide) {
	primary := hexColor(theme.PrimaryColor)
	text := hexColor(theme.TextColor)

	s := pres.AddSlide(hexColor(theme.BackgroundColor))

	// Diagonal wordmark and footer caption sit behind the content on
	// every slide.
	s.AddText(watermarkText, pptx.TextOptions{
		X: 0, Y: 1.5, W: 10, H: 3,
		FontSize: 100, Color: primary, Bold: true,
		Align: pptx.AlignCenter, Opacity: 5, Rotate: 330,
	})
	s.AddText(captionText, pptx.TextOptions{
		X: 0.5, Y: 5.2, W: 9, H: 0.3,
		FontSize: 10, Color: primary, Bold: true,
		Align: pptx.AlignCenter, Opacity: 30,
	})

	switch v := slide.(type) {
	case *domain.TitleSlide:
		s.AddText(watermarkText, pptx.TextOptions{
			X: 0, Y: 1.5, W: 10, H: 3,
			FontSize: 120, Color: primary, Bold: true,
			Align: pptx.AlignCenter, Opacity: 10,
		})
		s.AddText(v.SlideTitle, pptx.TextOptions{
			X: 1, Y: 2.2, W: 8, H: 1,
			FontSize: 44, Color: primary, Bold: true,
			Align: pptx.AlignCenter,
		})

	case *domain.ContentSlide:
		s.AddText(v.SlideTitle, pptx.TextOptions{
			X: 0.5, Y: 0.5, W: 9, H: 0.8,
			FontSize: 32, Color: primary, Bold: true,
		})
		s.AddText(v.Body, pptx.TextOptions{
			X: 0.5, Y: 1.5, W: 5, H: 2,
			FontSize: 14, Color: text,
		})
		if len(v.KeyPoints) > 0 {
			s.AddTextLines(v.KeyPoints, pptx.TextOptions{
				X: 0.5, Y: 3.6, W: 5, H: 1.5,
				FontSize: 12, Color: text, Bullet: true,
			})
		}
		if v.HasImage() {
			if data, err := decodeDataURI(v.Image); err == nil {
				s.AddImage(data, 5.8, 1.2, 3.8, 3.5)
			} else {
				e.logger.Warn("skipping undecodable slide image",
					"slide_id", v.SlideID,
					"error", err)
			}
		}

	case *domain.QuizSlide:
		s.AddText("QUIZ: "+v.SlideTitle, pptx.TextOptions{
			X: 0.5, Y: 0.5, W: 9, H: 0.5,
			FontSize: 18, Color: primary, Bold: true,
		})
		s.AddText(v.Quiz.Question, pptx.TextOptions{
			X: 0.5, Y: 1.2, W: 9, H: 1.5,
			FontSize: 24, Color: text, Bold: true,
		})
		for i, opt := range v.Quiz.Options {
			s.AddText(fmt.Sprintf("%c) %s", 'A'+i, opt), pptx.TextOptions{
				X: 0.8, Y: 2.8 + float64(i)*0.5, W: 8.5, H: 0.4,
				FontSize: 16, Color: text,
			})
		}
	}
}

// Filename builds the download file name from a chapter title, replacing
// characters that are unsafe in file names.
func Filename(chapterTitle string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(chapterTitle))
	if sanitized == "" {
		sanitized = "Deck"
	}
	return sanitized + fileNameSuffix
}

func hexColor(c string) string {
	return strings.TrimPrefix(c, "#")
}

// decodeDataURI extracts the raw bytes from a base64 data URI.
func decodeDataURI(uri string) ([]byte, error) {
	_, encoded, found := strings.Cut(uri, ";base64,")
	if !found || !strings.HasPrefix(uri, "data:") {
		return nil, fmt.Errorf("not a base64 data URI")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	return data, nil
}
