package pptx

import (
	"fmt"
	"strings"
)

// shape is anything that renders into a slide's shape tree. Shape IDs
// start at 2; id 1 is reserved for the group shape properties.
type shape interface {
	render(id int) string
}

type textShape struct {
	lines []string
	opts  TextOptions
}

func (t *textShape) render(id int) string {
	o := t.opts

	var b strings.Builder
	fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, id)

	b.WriteString(`<p:spPr><a:xfrm`)
	if o.Rotate != 0 {
		// Rotation is clockwise in 60000ths of a degree.
		fmt.Fprintf(&b, ` rot="%d"`, int64(o.Rotate*60000+0.5))
	}
	fmt.Fprintf(&b, `><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`,
		emu(o.X), emu(o.Y), emu(o.W), emu(o.H))
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)

	b.WriteString(`<p:txBody><a:bodyPr wrap="square" rtlCol="0"><a:normAutofit/></a:bodyPr><a:lstStyle/>`)
	for _, line := range t.lines {
		b.WriteString(`<a:p>`)
		b.WriteString(t.paragraphProps())
		b.WriteString(`<a:r>`)
		b.WriteString(t.runProps())
		fmt.Fprintf(&b, `<a:t>%s</a:t></a:r></a:p>`, escape(line))
	}
	b.WriteString(`</p:txBody></p:sp>`)
	return b.String()
}

func (t *textShape) paragraphProps() string {
	o := t.opts
	var attrs string
	if o.Align != "" && o.Align != AlignLeft {
		attrs = fmt.Sprintf(` algn="%s"`, o.Align)
	}
	if o.Bullet {
		return fmt.Sprintf(`<a:pPr%s><a:buFont typeface="Arial" pitchFamily="34" charset="0"/><a:buChar char="&#8226;"/></a:pPr>`, attrs)
	}
	if attrs == "" {
		return `<a:pPr><a:buNone/></a:pPr>`
	}
	return fmt.Sprintf(`<a:pPr%s><a:buNone/></a:pPr>`, attrs)
}

func (t *textShape) runProps() string {
	o := t.opts
	var b strings.Builder
	b.WriteString(`<a:rPr lang="en-US"`)
	if o.FontSize > 0 {
		// Font size is in hundredths of a point.
		fmt.Fprintf(&b, ` sz="%d"`, int64(o.FontSize*100+0.5))
	}
	if o.Bold {
		b.WriteString(` b="1"`)
	}
	b.WriteString(` dirty="0">`)
	fmt.Fprintf(&b, `<a:solidFill>%s</a:solidFill>`, srgbClr(o.Color, o.Opacity))
	b.WriteString(`</a:rPr>`)
	return b.String()
}

// picShape references the slide's Nth embedded image. Picture relationship
// IDs start at rId2; rId1 points at the slide layout.
type picShape struct {
	relIndex   int
	x, y, w, h float64
}

func (p *picShape) render(id int) string {
	return fmt.Sprintf(
		`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`+
			`<p:blipFill><a:blip r:embed="rId%d"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		id, id, p.relIndex+1, emu(p.x), emu(p.y), emu(p.w), emu(p.h))
}

func escape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
