package export

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedasmart/deck-api/internal/domain"
)

var pngStub = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngStub)
}

func testTheme() domain.ThemeConfig {
	return domain.ThemeConfig{
		PrimaryColor:    "#1A237E",
		SecondaryColor:  "#3949AB",
		TextColor:       "#212121",
		BackgroundColor: "#FFFFFF",
		AccentColor:     "#FF6F00",
	}
}

func testDeck() *domain.ChapterContent {
	return &domain.ChapterContent{
		ChapterTitle: "Light: Reflection and Refraction",
		Subject:      "Science",
		Theme:        testTheme(),
		Slides: []domain.Slide{
			&domain.TitleSlide{SlideID: "s1", SlideTitle: "Light: Reflection and Refraction"},
			&domain.ContentSlide{
				SlideID:     "s2",
				SlideTitle:  "Laws of Reflection",
				Body:        "The angle of incidence equals the angle of reflection.",
				KeyPoints:   []string{"Incident ray", "Normal at point of incidence"},
				ImagePrompt: "ray diagram",
				Image:       pngDataURI(),
			},
			&domain.QuizSlide{
				SlideID:    "s3",
				SlideTitle: "Check Your Understanding",
				Quiz: domain.QuizData{
					Question:      "Which mirror always forms a virtual image?",
					Options:       []string{"Concave", "Convex", "Plane", "Parabolic"},
					CorrectAnswer: 1,
					Explanation:   "A convex mirror always forms a virtual, diminished image.",
				},
			},
		},
	}
}

func newTestExporter(t *testing.T) *Exporter {
	t.Helper()
	e, err := NewExporter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return e
}

// slideParts unzips the artifact and returns the slide XML bodies in order,
// plus the full part map.
func slideParts(t *testing.T, a *Artifact) ([]string, map[string][]byte) {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(a.Data), int64(len(a.Data)))
	require.NoError(t, err)

	parts := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		parts[f.Name] = data
	}

	var slides []string
	for i := 1; ; i++ {
		data, ok := parts[fmt.Sprintf("ppt/slides/slide%d.xml", i)]
		if !ok {
			break
		}
		slides = append(slides, string(data))
	}
	return slides, parts
}

func TestNewExporterRequiresLogger(t *testing.T) {
	t.Parallel()

	_, err := NewExporter(nil)
	assert.Error(t, err)
}

func TestExportRejectsEmptyDeck(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)

	_, err := e.Export(nil)
	assert.ErrorIs(t, err, ErrEmptyDeck)

	_, err = e.Export(&domain.ChapterContent{ChapterTitle: "x", Subject: "y", Theme: testTheme()})
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestExportFilename(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	artifact, err := e.Export(testDeck())
	require.NoError(t, err)
	assert.Equal(t, "Light_ Reflection and Refraction_Vedantu_Official.pptx", artifact.Filename)
}

func TestFilenameSanitization(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Acids Bases and Salts", "Acids Bases and Salts_Vedantu_Official.pptx"},
		{"separators", "a/b\\c:d", "a_b_c_d_Vedantu_Official.pptx"},
		{"surrounding space", "  Electricity  ", "Electricity_Vedantu_Official.pptx"},
		{"empty", "", "Deck_Vedantu_Official.pptx"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Filename(tc.title))
		})
	}
}

func TestExportBrandsEverySlide(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	artifact, err := e.Export(testDeck())
	require.NoError(t, err)

	slides, _ := slideParts(t, artifact)
	require.Len(t, slides, 3)
	for i, xml := range slides {
		assert.Contains(t, xml, "<a:t>"+watermarkText+"</a:t>", "slide %d missing watermark", i+1)
		assert.Contains(t, xml, "<a:t>"+captionText+"</a:t>", "slide %d missing caption", i+1)
		assert.Contains(t, xml, `val="FFFFFF"`, "slide %d missing background", i+1)
	}
}

func TestExportTitleSlide(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	artifact, err := e.Export(testDeck())
	require.NoError(t, err)

	slides, _ := slideParts(t, artifact)
	title := slides[0]
	assert.Contains(t, title, `sz="12000"`, "oversized wordmark")
	assert.Contains(t, title, `sz="4400"`, "chapter title size")
	assert.Contains(t, title, "<a:t>Light: Reflection and Refraction</a:t>")
}

func TestExportContentSlide(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	artifact, err := e.Export(testDeck())
	require.NoError(t, err)

	slides, parts := slideParts(t, artifact)
	content := slides[1]
	assert.Contains(t, content, "<a:t>Laws of Reflection</a:t>")
	assert.Contains(t, content, "<a:t>The angle of incidence equals the angle of reflection.</a:t>")
	assert.Contains(t, content, "<a:t>Incident ray</a:t>")
	assert.Contains(t, content, `<a:buChar`)
	assert.Contains(t, content, `r:embed=`)
	assert.Equal(t, pngStub, parts["ppt/media/image1.png"])
}

func TestExportContentSlideWithoutImage(t *testing.T) {
	t.Parallel()

	deck := testDeck()
	deck.Slides[1].(*domain.ContentSlide).Image = ""

	e := newTestExporter(t)
	artifact, err := e.Export(deck)
	require.NoError(t, err)

	slides, parts := slideParts(t, artifact)
	assert.NotContains(t, slides[1], `r:embed=`)
	assert.NotContains(t, parts, "ppt/media/image1.png")
}

func TestExportSkipsUndecodableImage(t *testing.T) {
	t.Parallel()

	deck := testDeck()
	deck.Slides[1].(*domain.ContentSlide).Image = "data:image/png;base64,%%%not-base64%%%"

	e := newTestExporter(t)
	artifact, err := e.Export(deck)
	require.NoError(t, err, "a bad image payload does not fail the export")

	slides, _ := slideParts(t, artifact)
	assert.NotContains(t, slides[1], `r:embed=`)
}

func TestExportQuizSlideHidesAnswers(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	artifact, err := e.Export(testDeck())
	require.NoError(t, err)

	slides, _ := slideParts(t, artifact)
	quiz := slides[2]
	assert.Contains(t, quiz, "<a:t>QUIZ: Check Your Understanding</a:t>")
	assert.Contains(t, quiz, "<a:t>Which mirror always forms a virtual image?</a:t>")
	assert.Contains(t, quiz, "<a:t>A) Concave</a:t>")
	assert.Contains(t, quiz, "<a:t>D) Parabolic</a:t>")

	assert.NotContains(t, quiz, "virtual, diminished", "explanation must not leak into the export")
	assert.NotContains(t, quiz, "correct", "answer key must not leak into the export")
}

func TestExportIsDeterministic(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	a1, err := e.Export(testDeck())
	require.NoError(t, err)
	a2, err := e.Export(testDeck())
	require.NoError(t, err)

	assert.Equal(t, a1.Filename, a2.Filename)
	assert.Equal(t, a1.Data, a2.Data)
}
