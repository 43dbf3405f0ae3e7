package generation

import (
	"context"

	"github.com/vedasmart/deck-api/internal/domain"
)

// Document is a binary upload plus its media-kind marker, as sent to the
// content provider.
type Document struct {
	Data     []byte
	MIMEType string
}

// ContentGenerator produces a structured deck from a chapter document and an
// optional style sample. Implementations are stateless; a failed call has no
// side effects beyond the network request.
type ContentGenerator interface {
	// GenerateDeck sends the chapter document (and the style sample, when
	// non-nil) to the provider and returns the parsed deck. It returns an
	// error wrapping ErrInvalidResponse when the response body cannot be
	// parsed into the deck structure.
	GenerateDeck(ctx context.Context, chapter Document, style *Document) (*domain.ChapterContent, error)
}

// ImageGenerator produces a single diagram image for a content slide.
type ImageGenerator interface {
	// GenerateImage requests one 16:9 diagram for the given prompt and
	// subject and returns it as a base64 data URI. It returns an error
	// wrapping ErrNoImageGenerated when the provider returns no image
	// payload.
	GenerateImage(ctx context.Context, prompt, subject string) (string, error)
}
