package pptx

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimal valid PNG header bytes, enough to stand in for image data.
var pngStub = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func buildArchive(t *testing.T, p *Presentation) map[string][]byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
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
	return parts
}

func TestWriteEmptyPresentationFails(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := New().Write(&buf)
	assert.Error(t, err)
}

func TestWriteProducesRequiredParts(t *testing.T) {
	t.Parallel()

	p := New()
	s := p.AddSlide("FFFFFF")
	s.AddText("Hello", TextOptions{X: 1, Y: 1, W: 8, H: 1, FontSize: 44})

	parts := buildArchive(t, p)
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/_rels/slide1.xml.rels",
	} {
		assert.Contains(t, parts, name)
	}

	assert.Contains(t, string(parts["[Content_Types].xml"]), `/ppt/slides/slide1.xml`)
	assert.Contains(t, string(parts["ppt/presentation.xml"]), `cx="12192000" cy="6858000"`)
}

func TestWriteListsEverySlide(t *testing.T) {
	t.Parallel()

	p := New()
	for i := 0; i < 3; i++ {
		p.AddSlide("FFFFFF")
	}
	require.Equal(t, 3, p.SlideCount())

	parts := buildArchive(t, p)
	assert.Contains(t, parts, "ppt/slides/slide3.xml")

	pres := string(parts["ppt/presentation.xml"])
	assert.Contains(t, pres, `<p:sldId id="256" r:id="rId2"/>`)
	assert.Contains(t, pres, `<p:sldId id="258" r:id="rId4"/>`)

	rels := string(parts["ppt/_rels/presentation.xml.rels"])
	assert.Contains(t, rels, `Id="rId4"`)
	assert.Contains(t, rels, `Target="slides/slide3.xml"`)
}

func TestSlideBackgroundFill(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddSlide("1A237E")

	parts := buildArchive(t, p)
	slide := string(parts["ppt/slides/slide1.xml"])
	assert.Contains(t, slide, `<p:bg><p:bgPr><a:solidFill><a:srgbClr val="1A237E"/></a:solidFill>`)
}

func TestTextFormatting(t *testing.T) {
	t.Parallel()

	p := New()
	s := p.AddSlide("FFFFFF")
	s.AddText("WATERMARK", TextOptions{
		X: 0, Y: 1.5, W: 10, H: 3,
		FontSize: 100, Color: "1A237E", Bold: true,
		Align: AlignCenter, Rotate: 330, Opacity: 5,
	})

	parts := buildArchive(t, p)
	slide := string(parts["ppt/slides/slide1.xml"])

	assert.Contains(t, slide, `sz="10000"`)
	assert.Contains(t, slide, `b="1"`)
	assert.Contains(t, slide, `algn="ctr"`)
	assert.Contains(t, slide, `rot="19800000"`)
	assert.Contains(t, slide, `<a:srgbClr val="1A237E"><a:alpha val="5000"/></a:srgbClr>`)
	assert.Contains(t, slide, `<a:t>WATERMARK</a:t>`)
}

func TestTextGeometryInEMU(t *testing.T) {
	t.Parallel()

	p := New()
	s := p.AddSlide("FFFFFF")
	s.AddText("body", TextOptions{X: 0.5, Y: 1.5, W: 5, H: 2, FontSize: 14})

	parts := buildArchive(t, p)
	slide := string(parts["ppt/slides/slide1.xml"])
	assert.Contains(t, slide, `<a:off x="457200" y="1371600"/>`)
	assert.Contains(t, slide, `<a:ext cx="4572000" cy="1828800"/>`)
}

func TestBulletedLines(t *testing.T) {
	t.Parallel()

	p := New()
	s := p.AddSlide("FFFFFF")
	s.AddTextLines([]string{"first", "second"}, TextOptions{
		X: 0.5, Y: 3.6, W: 5, H: 1.5, FontSize: 12, Bullet: true,
	})

	parts := buildArchive(t, p)
	slide := string(parts["ppt/slides/slide1.xml"])
	assert.Contains(t, slide, `<a:buChar char="&#8226;"/>`)
	assert.Contains(t, slide, `<a:t>first</a:t>`)
	assert.Contains(t, slide, `<a:t>second</a:t>`)
	assert.Equal(t, 2, bytes.Count(parts["ppt/slides/slide1.xml"], []byte(`<a:buChar`)))
}

func TestTextIsEscaped(t *testing.T) {
	t.Parallel()

	p := New()
	s := p.AddSlide("FFFFFF")
	s.AddText(`Snell's law: n1 < n2 & "dense"`, TextOptions{X: 1, Y: 1, W: 8, H: 1, FontSize: 14})

	parts := buildArchive(t, p)
	slide := string(parts["ppt/slides/slide1.xml"])
	assert.Contains(t, slide, `Snell&apos;s law: n1 &lt; n2 &amp; &quot;dense&quot;`)
}

func TestImagesAreEmbeddedAndNumberedAcrossSlides(t *testing.T) {
	t.Parallel()

	p := New()
	s1 := p.AddSlide("FFFFFF")
	s1.AddImage(pngStub, 5.8, 1.2, 3.8, 3.5)
	s2 := p.AddSlide("FFFFFF")
	s2.AddImage(pngStub, 5.8, 1.2, 3.8, 3.5)

	parts := buildArchive(t, p)
	assert.Contains(t, parts, "ppt/media/image1.png")
	assert.Contains(t, parts, "ppt/media/image2.png")
	assert.Equal(t, pngStub, parts["ppt/media/image1.png"])

	assert.Contains(t, string(parts["ppt/slides/slide1.xml"]), `r:embed="rId2"`)
	assert.Contains(t, string(parts["ppt/slides/_rels/slide1.xml.rels"]), `Target="../media/image1.png"`)
	assert.Contains(t, string(parts["ppt/slides/_rels/slide2.xml.rels"]), `Target="../media/image2.png"`)

	types := string(parts["[Content_Types].xml"])
	assert.Contains(t, types, `Extension="png"`)
}
