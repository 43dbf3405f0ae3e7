package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vedasmart/deck-api/internal/domain"
	"github.com/vedasmart/deck-api/internal/generation"
	"github.com/vedasmart/deck-api/internal/retry"
)

// Progress milestones, matching the phase boundaries clients observe:
// request accepted, structure fetch started, structure installed, image
// phase spread over the remaining span, done.
const (
	progressAccepted      = 10.0
	progressFetching      = 30.0
	progressStructureDone = 60.0
	progressImageSpan     = 35.0
	progressImageCap      = 95.0
	progressDone          = 100.0
)

// Pipeline assembles a deck: one structure fetch, then one image request
// per content slide that wants a diagram. Only the structure fetch is fatal
// to a generation; image failures are isolated per slide by design.
type Pipeline struct {
	content generation.ContentGenerator
	image   generation.ImageGenerator
	logger  *slog.Logger

	// retryPolicy wraps every provider call; retries apply only to
	// rate-limit signals.
	retryPolicy retry.Policy

	// imageDelay is the fixed courtesy delay imposed before every image
	// request.
	imageDelay time.Duration

	// sleep performs the inter-request delay. Injectable for tests.
	sleep retry.SleepFunc
}

// PipelineConfig holds pipeline tuning knobs.
type PipelineConfig struct {
	RetryPolicy retry.Policy
	ImageDelay  time.Duration

	// Sleep overrides the inter-request delay implementation. Nil means a
	// timer-based wait.
	Sleep retry.SleepFunc
}

// NewPipeline creates a Pipeline from the provided dependencies.
func NewPipeline(
	content generation.ContentGenerator,
	image generation.ImageGenerator,
	cfg PipelineConfig,
	logger *slog.Logger,
) (*Pipeline, error) {
	if content == nil {
		return nil, errors.New("content generator cannot be nil")
	}
	if image == nil {
		return nil, errors.New("image generator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	sleep := cfg.Sleep
	if sleep == nil {
		sleep = timerSleep
	}
	if cfg.ImageDelay <= 0 {
		cfg.ImageDelay = 800 * time.Millisecond
	}

	return &Pipeline{
		content:     content,
		image:       image,
		logger:      logger,
		retryPolicy: cfg.RetryPolicy,
		imageDelay:  cfg.ImageDelay,
		sleep:       sleep,
	}, nil
}

// isRateLimitSignal decides retryability for the retry decorator.
func isRateLimitSignal(err error) bool {
	return errors.Is(err, generation.ErrRateLimited)
}

// Run executes the full generation for one session. It drives the session
// through GeneratingContent and GeneratingImages and leaves it either in
// ViewingDeck or, on a fatal failure, back in Idle with an error message.
func (p *Pipeline) Run(
	ctx context.Context,
	session *Session,
	chapter generation.Document,
	style *generation.Document,
) error {
	if len(chapter.Data) == 0 {
		// Precondition failures surface before any state transition.
		return ErrMissingChapter
	}

	session.setProgress(progressAccepted)
	session.setProgress(progressFetching)
	session.setState(StateGeneratingContent)

	deck, err := retry.Do(ctx, p.retryPolicy, isRateLimitSignal,
		func(ctx context.Context) (*domain.ChapterContent, error) {
			return p.content.GenerateDeck(ctx, chapter, style)
		})
	if err != nil {
		// Any structure-fetch failure is fatal to the whole generation.
		if isRateLimitSignal(err) {
			err = fmt.Errorf("%w: %v", generation.ErrRetryExhausted, err)
		}
		p.logger.ErrorContext(ctx, "deck structure fetch failed",
			"session_id", session.ID(),
			"error", err)
		session.fail(userMessage(err))
		return err
	}

	// The raw deck becomes the working deck immediately so consumers can
	// reflect chapter title and subject before images complete.
	session.installDeck(deck)
	session.setProgress(progressStructureDone)
	session.setState(StateGeneratingImages)

	failCount := 0
	total := len(deck.Slides)
	for _, slide := range deck.Slides {
		if cs, ok := slide.(*domain.ContentSlide); ok && cs.NeedsImage() {
			if err := p.generateSlideImage(ctx, session, deck, cs); err != nil {
				if ctx.Err() != nil {
					session.fail(userMessage(err))
					return err
				}
				failCount++
			}
		}
		session.setProgress(min(session.Snapshot().Progress+progressImageSpan/float64(total), progressImageCap))
	}

	if failCount > 0 {
		p.logger.WarnContext(ctx, "some diagrams could not be generated",
			"session_id", session.ID(),
			"failed", failCount)
		session.setWarning(imageWarningMessage)
	}

	session.setState(StateViewingDeck)
	session.setProgress(progressDone)

	p.logger.InfoContext(ctx, "deck generation completed",
		"session_id", session.ID(),
		"slides", total,
		"image_failures", failCount)
	return nil
}

// generateSlideImage fetches one diagram, honoring the fixed inter-request
// delay. A context error aborts the run; any other failure is reported to
// the caller, which counts it and moves on.
func (p *Pipeline) generateSlideImage(
	ctx context.Context,
	session *Session,
	deck *domain.ChapterContent,
	slide *domain.ContentSlide,
) error {
	if err := p.sleep(ctx, p.imageDelay); err != nil {
		return err
	}

	image, err := retry.Do(ctx, p.retryPolicy, isRateLimitSignal,
		func(ctx context.Context) (string, error) {
			return p.image.GenerateImage(ctx, slide.ImagePrompt, deck.Subject)
		})
	if err != nil {
		p.logger.WarnContext(ctx, "diagram generation failed for slide",
			"session_id", session.ID(),
			"slide_id", slide.SlideID,
			"error", err)
		return err
	}

	slide.AttachImage(image)
	return nil
}

// userMessage converts a pipeline failure into the message surfaced to the
// caller, with a generic fallback for blank messages.
func userMessage(err error) string {
	if err == nil || err.Error() == "" {
		return fallbackErrorMessage
	}
	if errors.Is(err, generation.ErrInvalidResponse) {
		return generation.ErrInvalidResponse.Error()
	}
	if errors.Is(err, generation.ErrRetryExhausted) || errors.Is(err, generation.ErrRateLimited) {
		return fallbackErrorMessage
	}
	return err.Error()
}

func timerSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
