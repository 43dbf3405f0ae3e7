// Package pptx writes PresentationML (.pptx) files. It covers the small
// surface deck export needs: 16:9 slides with a solid background, absolutely
// positioned text boxes with size, color, bold, alignment, rotation and
// opacity, bulleted paragraph runs, and embedded PNG pictures. Geometry is
// given in inches on a 10 x 5.625 inch layout.
package pptx

import (
	"errors"
	"fmt"
	"io"
)

// Layout dimensions in inches (16:9).
const (
	LayoutWidth  = 10.0
	LayoutHeight = 5.625
)

// emuPerInch is the OOXML English Metric Unit scale.
const emuPerInch = 914400

// Horizontal alignment of a paragraph.
type Align string

// Supported paragraph alignments. The zero value renders as left.
const (
	AlignLeft   Align = "l"
	AlignCenter Align = "ctr"
	AlignRight  Align = "r"
)

// TextOptions positions and styles a text box. X, Y, W, H are inches;
// FontSize is in points. Opacity is a percentage; zero means fully opaque.
type TextOptions struct {
	X, Y, W, H float64
	FontSize   float64
	Color      string
	Bold       bool
	Align      Align

	// Rotate is a clockwise rotation in degrees.
	Rotate float64

	// Opacity in percent, 1 to 100. Zero is treated as 100.
	Opacity float64

	// Bullet renders each paragraph with a bullet character.
	Bullet bool
}

// Presentation is an in-memory deck being assembled for writing.
type Presentation struct {
	slides []*Slide
}

// New creates an empty presentation.
func New() *Presentation {
	return &Presentation{}
}

// AddSlide appends a slide with a solid background of the given color
// (RRGGBB, no leading hash).
func (p *Presentation) AddSlide(background string) *Slide {
	s := &Slide{background: background}
	p.slides = append(p.slides, s)
	return s
}

// SlideCount returns the number of slides added so far.
func (p *Presentation) SlideCount() int {
	return len(p.slides)
}

// Slide is a single slide under construction. Shapes render in insertion
// order, so earlier shapes sit behind later ones.
type Slide struct {
	background string
	shapes     []shape
	images     [][]byte
}

// AddText places a single-paragraph text box on the slide.
func (s *Slide) AddText(text string, opts TextOptions) {
	s.AddTextLines([]string{text}, opts)
}

// AddTextLines places a text box where each line is its own paragraph,
// sharing one set of options. With opts.Bullet set this renders a bulleted
// list.
func (s *Slide) AddTextLines(lines []string, opts TextOptions) {
	s.shapes = append(s.shapes, &textShape{lines: lines, opts: opts})
}

// AddImage places a PNG picture at the given position, in inches. The data
// must be the raw PNG bytes.
func (s *Slide) AddImage(data []byte, x, y, w, h float64) {
	s.images = append(s.images, data)
	s.shapes = append(s.shapes, &picShape{
		relIndex: len(s.images),
		x:        x, y: y, w: w, h: h,
	})
}

// Write serializes the presentation as a complete .pptx archive.
func (p *Presentation) Write(w io.Writer) error {
	if len(p.slides) == 0 {
		return errors.New("presentation has no slides")
	}
	return writeArchive(w, p)
}

func emu(inches float64) int64 {
	return int64(inches*emuPerInch + 0.5)
}

// srgbClr renders a color fill element, with an alpha child when opacity
// is below 100 percent. Alpha is expressed in thousandths of a percent.
func srgbClr(color string, opacity float64) string {
	if color == "" {
		color = "000000"
	}
	if opacity <= 0 || opacity >= 100 {
		return fmt.Sprintf(`<a:srgbClr val="%s"/>`, color)
	}
	return fmt.Sprintf(`<a:srgbClr val="%s"><a:alpha val="%d"/></a:srgbClr>`, color, int64(opacity*1000+0.5))
}
