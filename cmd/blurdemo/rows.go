package main

import (
	"hash/fnv"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/viewblur/internal/config"
	"github.com/gogpu/viewblur/surface"
)

var (
	windowColor = color.RGBA{R: 0x18, G: 0x1a, B: 0x20, A: 0xff}
	rowColor    = color.RGBA{R: 0x27, G: 0x2a, B: 0x33, A: 0xff}
)

const (
	rowMargin  = 10.0
	avatarSize = 60.0
	textScale  = 1.5
)

// buildWindow lays out a window holding a vertical list with one row per
// configured name.
func buildWindow(cfg *config.Config) (window, list *surface.Node) {
	width := cfg.Render.Width
	height := float64(len(cfg.Render.Names)) * cfg.Render.RowHeight

	window = surface.NewNode("window", surface.Rect{W: width, H: height})
	window.Background = windowColor

	list = surface.NewStack("list", surface.Rect{W: width, H: height}, 0)
	_ = window.Append(list)

	title := cases.Title(language.English)
	for i, name := range cfg.Render.Names {
		_ = list.Append(buildRow(i, title.String(name), width, cfg.Render.RowHeight))
	}
	return window, list
}

// buildRow creates a card with an avatar, a name and a message preview.
func buildRow(i int, name string, width, height float64) *surface.Node {
	row := surface.NewNode("row", surface.Rect{W: width, H: height})

	card := surface.NewNode("card", surface.Rect{
		X: rowMargin, Y: rowMargin,
		W: width - 2*rowMargin, H: height - 2*rowMargin,
	})
	card.Background = rowColor
	_ = row.Append(card)

	avatar := surface.NewNode("avatar", surface.Rect{
		X: 2 * rowMargin, Y: (card.Frame().H - avatarSize) / 2,
		W: avatarSize, H: avatarSize,
	})
	avatar.Content = avatarImage(name, int(avatarSize))
	_ = card.Append(avatar)

	x := 3*rowMargin + avatarSize
	_ = card.Append(textNode("name", name, x, 2*rowMargin, color.White))
	preview := messages[i%len(messages)]
	_ = card.Append(textNode("message", preview, x, 2*rowMargin+20*textScale, color.Gray{Y: 0xb0}))
	return row
}

var messages = []string{
	"See you at the standup",
	"Pushed the fix, please review",
	"Lunch?",
	"The build is green again",
}

// textNode renders s with the 7x13 bitmap face into a node at (x, y).
func textNode(name, s string, x, y float64, c color.Color) *surface.Node {
	face := basicfont.Face7x13
	w := font.MeasureString(face, s).Ceil()
	m := face.Metrics()
	h := (m.Ascent + m.Descent).Ceil()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	d.DrawString(s)

	n := surface.NewNode(name, surface.Rect{X: x, Y: y, W: float64(w) * textScale, H: float64(h) * textScale})
	n.Content = img
	return n
}

// avatarImage draws a shaded disc whose hue derives from name.
func avatarImage(name string, size int) image.Image {
	hf := fnv.New32a()
	_, _ = hf.Write([]byte(name))
	sum := hf.Sum32()
	base := color.RGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 0xff}

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
			dist := math.Hypot(dx, dy)
			if dist > r {
				continue
			}
			shade := 1 - 0.4*dist/r
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(float64(base.R) * shade),
				G: uint8(float64(base.G) * shade),
				B: uint8(float64(base.B) * shade),
				A: 0xff,
			})
		}
	}
	return img
}
