package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedasmart/deck-api/internal/config"
	"github.com/vedasmart/deck-api/internal/domain"
	"github.com/vedasmart/deck-api/internal/export"
	"github.com/vedasmart/deck-api/internal/generation"
	"github.com/vedasmart/deck-api/internal/service"
	"github.com/vedasmart/deck-api/internal/task"
)

type fixedContentGenerator struct{}

func (fixedContentGenerator) GenerateDeck(context.Context, generation.Document, *generation.Document) (*domain.ChapterContent, error) {
	return &domain.ChapterContent{
		ChapterTitle: "Electricity",
		Subject:      "Science",
		Theme: domain.ThemeConfig{
			PrimaryColor:    "#1A237E",
			SecondaryColor:  "#3949AB",
			TextColor:       "#212121",
			BackgroundColor: "#FFFFFF",
			AccentColor:     "#FF6F00",
		},
		Slides: []domain.Slide{
			&domain.TitleSlide{SlideID: "s1", SlideTitle: "Electricity"},
		},
	}, nil
}

type fixedImageGenerator struct{}

func (fixedImageGenerator) GenerateImage(context.Context, string, string) (string, error) {
	return "data:image/png;base64,aW1n", nil
}

func newTestApplication(t *testing.T) *application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "info"},
	}

	pipeline, err := service.NewPipeline(fixedContentGenerator{}, fixedImageGenerator{}, service.PipelineConfig{
		ImageDelay: time.Millisecond,
		Sleep:      func(context.Context, time.Duration) error { return nil },
	}, logger)
	require.NoError(t, err)

	runner := task.NewTaskRunner(task.DefaultTaskRunnerConfig(), logger)
	require.NoError(t, runner.Start())
	t.Cleanup(runner.Stop)

	deckService, err := service.NewDeckService(pipeline, runner, logger)
	require.NoError(t, err)

	exporter, err := export.NewExporter(logger)
	require.NoError(t, err)

	return &application{
		config:      cfg,
		logger:      logger,
		taskRunner:  runner,
		deckService: deckService,
		exporter:    exporter,
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestDeckRoutesAreRegistered(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="chapter"; filename="chapter.pdf"`)
	hdr.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.7"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/decks", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/decks/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
