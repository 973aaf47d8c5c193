// Package calendar renders the Ramadan month table as a PNG image.
package calendar

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Abdurahmonovz/ramadan/internal/prayers"
)

// Row is one rendered table line.
type Row struct {
	Date    string // "dd-mm-yyyy"
	Imsak   string // "HH:MM"
	Maghrib string // "HH:MM"
}

// Layout constants; the table is Day | Date | Imsak | Maghrib.
const (
	padding = 24
	lineH   = 30
	headerH = 110
)

var colW = [4]int{70, 170, 120, 140}

var (
	headerFill = color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
	zebraFill  = color.RGBA{R: 0xfb, G: 0xfb, B: 0xfb, A: 0xff}
)

// FromDays converts fetched calendar days into table rows. Time strings are
// cut to "HH:MM"; upstream appends timezone suffixes.
func FromDays(days []prayers.CalendarDay) []Row {
	rows := make([]Row, 0, len(days))
	for _, d := range days {
		rows = append(rows, Row{
			Date:    d.GregorianDate,
			Imsak:   clock(d.Imsak),
			Maghrib: clock(d.Maghrib),
		})
	}
	return rows
}

func clock(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 5 {
		s = s[:5]
	}
	return s
}

// RenderPNG draws the table and returns the encoded image.
func RenderPNG(title string, rows []Row) ([]byte, error) {
	tableW := colW[0] + colW[1] + colW[2] + colW[3]
	tableH := lineH * (len(rows) + 1) // + header row
	w := tableW + padding*2
	h := headerH + tableH + padding

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	drawText(img, padding, 40, title)
	drawText(img, padding, 75, "Ramazon taqvimi (Imsak / Maghrib)")

	x0, y0 := padding, headerH

	fillRect(img, x0, y0, x0+tableW, y0+lineH, headerFill)
	headers := [4]string{"Kun", "Sana", "Imsak", "Maghrib"}
	x := x0
	for i, head := range headers {
		drawText(img, x+10, y0+20, head)
		x += colW[i]
	}

	for idx, row := range rows {
		y := y0 + lineH*(idx+1)
		if (idx+1)%2 == 0 {
			fillRect(img, x0, y, x0+tableW, y+lineH, zebraFill)
		}
		values := [4]string{fmt.Sprintf("%02d", idx+1), row.Date, row.Imsak, row.Maghrib}
		x = x0
		for i, val := range values {
			drawText(img, x+10, y+20, val)
			x += colW[i]
		}
		hline(img, x0, x0+tableW, y)
	}

	// Outer border and column separators.
	hline(img, x0, x0+tableW, y0)
	hline(img, x0, x0+tableW, y0+tableH)
	vline(img, x0, y0, y0+tableH)
	x = x0
	for _, wcol := range colW {
		x += wcol
		vline(img, x, y0, y0+tableH)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode calendar png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawText(img *image.RGBA, x, y int, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1), image.NewUniform(c), image.Point{}, draw.Src)
}

func hline(img *image.RGBA, x0, x1, y int) {
	for x := x0; x <= x1; x++ {
		img.Set(x, y, color.Black)
	}
}

func vline(img *image.RGBA, x, y0, y1 int) {
	for y := y0; y <= y1; y++ {
		img.Set(x, y, color.Black)
	}
}
