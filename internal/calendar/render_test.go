package calendar

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/Abdurahmonovz/ramadan/internal/prayers"
)

func TestFromDays_TrimsClockSuffix(t *testing.T) {
	rows := FromDays([]prayers.CalendarDay{
		{GregorianDate: "01-03-2026", Imsak: "05:12 (+05)", Maghrib: "18:20"},
	})
	if len(rows) != 1 {
		t.Fatalf("want 1 row, got %d", len(rows))
	}
	if rows[0].Imsak != "05:12" || rows[0].Maghrib != "18:20" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestRenderPNG_Dimensions(t *testing.T) {
	rows := []Row{
		{Date: "01-03-2026", Imsak: "05:12", Maghrib: "18:20"},
		{Date: "02-03-2026", Imsak: "05:11", Maghrib: "18:21"},
		{Date: "03-03-2026", Imsak: "05:10", Maghrib: "18:22"},
	}
	raw, err := RenderPNG("Tashkent", rows)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	wantW := 70 + 170 + 120 + 140 + 2*padding
	wantH := headerH + lineH*(len(rows)+1) + padding
	b := img.Bounds()
	if b.Dx() != wantW || b.Dy() != wantH {
		t.Fatalf("image %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestRenderPNG_EmptyRows(t *testing.T) {
	raw, err := RenderPNG("Tashkent", nil)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		t.Fatalf("decode png: %v", err)
	}
}
