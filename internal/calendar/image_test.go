package calendar

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"tutordesk/internal/model"
)

func TestRenderPNG(t *testing.T) {
	slots := []model.TimeSlot{
		{ID: 1, Date: "2026-02-10", StartTime: "09:00", EndTime: "10:00", Available: true},
		{ID: 2, Date: "2026-02-10", StartTime: "10:00", EndTime: "11:00", Available: false},
		{ID: 3, Date: "2026-02-12", StartTime: "14:00", EndTime: "15:00", Available: true},
	}
	m := BuildMonth(slots, 2026, time.February)

	data, err := RenderPNG(m)
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 7*cellWidth {
		t.Errorf("width = %d, want %d", bounds.Dx(), 7*cellWidth)
	}
	wantHeight := headerHeight + weekdayRow + 4*cellHeight // Feb 2026 is 4 weeks
	if bounds.Dy() != wantHeight {
		t.Errorf("height = %d, want %d", bounds.Dy(), wantHeight)
	}
}

func TestRenderPNGEmptyGrid(t *testing.T) {
	if _, err := RenderPNG(Month{}); err == nil {
		t.Error("RenderPNG(empty) should fail")
	}
}
