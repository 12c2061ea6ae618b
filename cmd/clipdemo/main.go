// Command clipdemo draws through a stack of clips and writes the coverage
// of the target, and optionally of the final clip, as PNG files.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/ggclip"
	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/glyph"
	"github.com/gogpu/ggclip/gstate"
	"github.com/gogpu/ggclip/pattern"
	"github.com/gogpu/ggclip/surface"
)

func main() {
	var (
		width      = flag.Int("width", 400, "image width")
		height     = flag.Int("height", 300, "image height")
		output     = flag.String("output", "clipdemo.png", "output file")
		clipOut    = flag.String("clip", "", "write the final clip mask to this file")
		text       = flag.String("text", "ggclip", "text drawn through the clip")
		targetName = flag.String("target", "image", "surface factory name")
		verbose    = flag.Bool("v", false, "log clip decisions")
	)
	flag.Parse()

	if *verbose {
		ggclip.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	target, err := surface.NewByName(*targetName, surface.Options{
		Bounds: image.Rect(0, 0, *width, *height),
	})
	if err != nil {
		log.Fatalf("Failed to create surface (have %v): %v", surface.Names(), err)
	}
	defer target.Close()
	dst, ok := target.(*surface.ImageSurface)
	if !ok {
		log.Fatalf("Surface %q is %T, want an image surface", *targetName, target)
	}

	s := gstate.New(dst, ggclip.WithLogger(ggclip.Logger()))
	defer s.Close()

	if err := draw(s, float64(*width), float64(*height), *text); err != nil {
		log.Fatalf("Failed to draw: %v", err)
	}
	if err := writePNG(*output, dst.Image()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)

	if *clipOut == "" {
		return
	}
	mask, _, err := s.Arena().Surface(s.ClipHandle(), dst)
	if err != nil {
		log.Fatalf("Failed to materialize clip: %v", err)
	}
	defer mask.Close()
	if err := writePNG(*clipOut, mask.Image()); err != nil {
		log.Fatalf("Failed to save clip: %v", err)
	}
	log.Printf("Clip %v saved to %s\n", s.ClipHandle(), *clipOut)
}

func draw(s *gstate.State, w, h float64, text string) error {
	// Background gradient, unclipped.
	s.SetSource(pattern.NewLinear(0, 0, w, 0,
		pattern.Stop{Offset: 0, Color: color.Alpha{A: 0x20}},
		pattern.Stop{Offset: 1, Color: color.Alpha{A: 0x60}}))
	if err := s.Paint(); err != nil {
		return err
	}

	// Rectangle, then circle: the clip becomes a path clip.
	s.ClipRectangle(image.Rect(int(w/8), int(h/8), int(w*7/8), int(h*7/8)))
	s.Path().Arc(w/2, h/2, h*3/8)
	s.Clip()

	s.SetSource(pattern.Opaque())
	s.Save()
	s.SetOperator(surface.OperatorXor)
	for x := 0.0; x < w; x += 20 {
		s.Rectangle(x, 0, 10, h)
	}
	if err := s.Fill(); err != nil {
		return err
	}
	if err := s.Restore(); err != nil {
		return err
	}

	face, err := glyph.NewXImageFace(goregular.TTF, h/6, font.HintingNone, geom.AntialiasDefault)
	if err != nil {
		return err
	}
	s.SetFace(glyph.NewCachedFace(face, 0))
	s.SetOperator(surface.OperatorXor)
	glyphs := make([]glyph.Glyph, 0, len(text))
	x := w / 4
	for _, r := range text {
		idx, err := face.Index(r)
		if err != nil {
			continue
		}
		glyphs = append(glyphs, glyph.Glyph{Index: idx, X: x, Y: h / 2})
		adv, err := face.Advance(idx)
		if err != nil {
			return err
		}
		x += adv
	}
	return s.ShowGlyphs(glyphs)
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
