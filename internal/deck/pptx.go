package deck

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP   = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsRel = "http://schemas.openxmlformats.org/package/2006/relationships"

	relOfficeDoc   = nsR + "/officeDocument"
	relSlide       = nsR + "/slide"
	relSlideMaster = nsR + "/slideMaster"
	relSlideLayout = nsR + "/slideLayout"
	relTheme       = nsR + "/theme"
	relImage       = nsR + "/image"
	relCoreProps   = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relAppProps    = nsR + "/extended-properties"

	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctCoreProps    = "application/vnd.openxmlformats-package.core-properties+xml"
	ctAppProps     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"

	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

// Save writes the deck to path as a .pptx file
func (d *Deck) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WritePPTX(file, d); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// media is an image embedded in the package, shared between slides
type media struct {
	part string // ppt/media/imageN.ext
	src  string
}

// WritePPTX writes the deck as an Office Open XML presentation
func WritePPTX(w io.Writer, d *Deck) error {
	pw := &packageWriter{zw: zip.NewWriter(w), modified: time.Now()}

	// Media first so slide relationships can point at them.
	var images []media
	index := map[string]int{}
	for _, s := range d.Slides {
		for _, p := range s.Pictures() {
			if _, ok := index[p.Path]; ok {
				continue
			}
			index[p.Path] = len(images)
			images = append(images, media{
				part: fmt.Sprintf("ppt/media/image%d%s", len(images)+1, mediaExt(p.Path)),
				src:  p.Path,
			})
		}
	}

	pw.writeString("[Content_Types].xml", contentTypes(len(d.Slides)))
	pw.writeString("_rels/.rels", relationships(
		rel{relOfficeDoc, "ppt/presentation.xml"},
		rel{relCoreProps, "docProps/core.xml"},
		rel{relAppProps, "docProps/app.xml"},
	))
	pw.writeString("docProps/core.xml", coreProps(d.Title, pw.modified))
	pw.writeString("docProps/app.xml", appProps(len(d.Slides)))

	presRels := []rel{{relSlideMaster, "slideMasters/slideMaster1.xml"}, {relTheme, "theme/theme1.xml"}}
	for i := range d.Slides {
		presRels = append(presRels, rel{relSlide, fmt.Sprintf("slides/slide%d.xml", i+1)})
	}
	pw.writeString("ppt/presentation.xml", presentation(d))
	pw.writeString("ppt/_rels/presentation.xml.rels", relationships(presRels...))

	pw.writeString("ppt/slideMasters/slideMaster1.xml", slideMasterXML)
	pw.writeString("ppt/slideMasters/_rels/slideMaster1.xml.rels", relationships(
		rel{relSlideLayout, "../slideLayouts/slideLayout1.xml"},
		rel{relTheme, "../theme/theme1.xml"},
	))
	pw.writeString("ppt/slideLayouts/slideLayout1.xml", slideLayoutXML)
	pw.writeString("ppt/slideLayouts/_rels/slideLayout1.xml.rels", relationships(
		rel{relSlideMaster, "../slideMasters/slideMaster1.xml"},
	))
	pw.writeString("ppt/theme/theme1.xml", themeXML)

	for i, s := range d.Slides {
		slideRels := []rel{{relSlideLayout, "../slideLayouts/slideLayout1.xml"}}
		embeds := map[*Picture]string{}
		seen := map[string]string{}
		for _, p := range s.Pictures() {
			if id, ok := seen[p.Path]; ok {
				embeds[p] = id
				continue
			}
			slideRels = append(slideRels, rel{relImage, "../media/" + filepath.Base(images[index[p.Path]].part)})
			id := fmt.Sprintf("rId%d", len(slideRels))
			seen[p.Path] = id
			embeds[p] = id
		}
		pw.writeString(fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML(s, embeds))
		pw.writeString(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), relationships(slideRels...))
	}

	for _, m := range images {
		pw.copyFile(m.part, m.src)
	}

	if pw.err != nil {
		return pw.err
	}
	return pw.zw.Close()
}

type packageWriter struct {
	zw       *zip.Writer
	modified time.Time
	err      error
}

func (pw *packageWriter) create(name string) io.Writer {
	if pw.err != nil {
		return nil
	}
	w, err := pw.zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: pw.modified})
	if err != nil {
		pw.err = fmt.Errorf("failed to add %s: %w", name, err)
		return nil
	}
	return w
}

func (pw *packageWriter) writeString(name, content string) {
	w := pw.create(name)
	if w == nil {
		return
	}
	if _, err := io.WriteString(w, content); err != nil {
		pw.err = fmt.Errorf("failed to write %s: %w", name, err)
	}
}

func (pw *packageWriter) copyFile(name, src string) {
	f, err := os.Open(src)
	if err != nil {
		if pw.err == nil {
			pw.err = fmt.Errorf("failed to embed %s: %w", src, err)
		}
		return
	}
	defer f.Close()

	w := pw.create(name)
	if w == nil {
		return
	}
	if _, err := io.Copy(w, f); err != nil {
		pw.err = fmt.Errorf("failed to embed %s: %w", src, err)
	}
}

func mediaExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return ".png"
	case ".gif":
		return ".gif"
	default:
		return ".jpeg"
	}
}

type rel struct {
	typ    string
	target string
}

func relationships(rels ...rel) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<Relationships xmlns="%s">`, nsRel)
	for i, r := range rels {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s" Target="%s"/>`, i+1, r.typ, esc(r.target))
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func contentTypes(slides int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
	b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	b.WriteString(`<Default Extension="gif" ContentType="image/gif"/>`)
	override := func(part, ct string) {
		fmt.Fprintf(&b, `<Override PartName="/%s" ContentType="%s"/>`, part, ct)
	}
	override("ppt/presentation.xml", ctPresentation)
	override("ppt/slideMasters/slideMaster1.xml", ctSlideMaster)
	override("ppt/slideLayouts/slideLayout1.xml", ctSlideLayout)
	override("ppt/theme/theme1.xml", ctTheme)
	override("docProps/core.xml", ctCoreProps)
	override("docProps/app.xml", ctAppProps)
	for i := 1; i <= slides; i++ {
		override(fmt.Sprintf("ppt/slides/slide%d.xml", i), ctSlide)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

func coreProps(title string, created time.Time) string {
	stamp := created.UTC().Format(time.RFC3339)
	return xmlHeader + `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + esc(title) + `</dc:title><dc:creator>doordeck</dc:creator>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:modified>` +
		`</cp:coreProperties>`
}

func appProps(slides int) string {
	return xmlHeader + fmt.Sprintf(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">`+
		`<Application>doordeck</Application><Slides>%d</Slides></Properties>`, slides)
}

func presentation(d *Deck) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" saveSubsetFonts="1">`, nsA, nsR, nsP)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := range d.Slides {
		// rId1 and rId2 are the master and the theme
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+3)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, d.Width, d.Height)
	b.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

const emptyGroup = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

func slideXML(s *Slide, embeds map[*Picture]string) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(emptyGroup)

	for i, el := range s.Elements {
		id := i + 2
		switch el := el.(type) {
		case *Shape:
			writeShape(&b, id, el)
		case *TextBox:
			writeTextBox(&b, id, el)
		case *Picture:
			writePicture(&b, id, el, embeds[el])
		}
	}

	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return b.String()
}

func writeXfrm(b *strings.Builder, r Rect) {
	fmt.Fprintf(b, `<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, r.X, r.Y, r.W, r.H)
}

func writeShape(b *strings.Builder, id int, s *Shape) {
	name := "Rectangle"
	if s.Geometry == GeomEllipse {
		name = "Oval"
	}
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr>`, id, name, id)
	writeXfrm(b, s.Rect)
	fmt.Fprintf(b, `<a:prstGeom prst="%s"><a:avLst/></a:prstGeom>`, s.Geometry)
	fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, hex(s.Fill))
	if s.LineWidth > 0 {
		fmt.Fprintf(b, `<a:ln w="%d"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:ln>`, s.LineWidth, hex(s.Line))
	} else {
		b.WriteString(`<a:ln><a:noFill/></a:ln>`)
	}
	b.WriteString(`</p:spPr><p:txBody><a:bodyPr rtlCol="0" anchor="ctr"/><a:lstStyle/><a:p><a:endParaRPr lang="en-US"/></a:p></p:txBody></p:sp>`)
}

func writeTextBox(b *strings.Builder, id int, tb *TextBox) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr>`, id, id)
	writeXfrm(b, tb.Rect)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)
	b.WriteString(`<p:txBody><a:bodyPr wrap="square" rtlCol="0"><a:noAutofit/></a:bodyPr><a:lstStyle/>`)
	for _, p := range tb.Paragraphs {
		b.WriteString(`<a:p>`)
		align := p.Align
		if align == "" {
			align = AlignLeft
		}
		fmt.Fprintf(b, `<a:pPr algn="%s">`, align)
		if p.SpaceBefore > 0 {
			fmt.Fprintf(b, `<a:spcBef><a:spcPts val="%d"/></a:spcBef>`, int(p.SpaceBefore*100))
		}
		b.WriteString(`</a:pPr>`)
		b.WriteString(`<a:r>`)
		writeRunProps(b, p.Font)
		b.WriteString(`<a:t>` + esc(p.Text) + `</a:t></a:r></a:p>`)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

func writeRunProps(b *strings.Builder, f Font) {
	b.WriteString(`<a:rPr lang="en-US" dirty="0"`)
	if f.Size > 0 {
		fmt.Fprintf(b, ` sz="%d"`, int(f.Size*100))
	}
	if f.Bold {
		b.WriteString(` b="1"`)
	}
	if f.Italic {
		b.WriteString(` i="1"`)
	}
	fmt.Fprintf(b, `><a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, hex(f.Color))
	if f.Face != "" {
		fmt.Fprintf(b, `<a:latin typeface="%s"/>`, esc(f.Face))
	}
	b.WriteString(`</a:rPr>`)
}

func writePicture(b *strings.Builder, id int, p *Picture, embed string) {
	fmt.Fprintf(b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d" descr="%s"/>`, id, id, esc(p.Descr))
	b.WriteString(`<p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`)
	fmt.Fprintf(b, `<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill><p:spPr>`, embed)
	writeXfrm(b, p.Rect)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

func esc(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
