package calendar

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Layout constants for the exported month image.
const (
	cellWidth    = 120
	cellHeight   = 90
	headerHeight = 60
	weekdayRow   = 24
	cellPadding  = 4
)

// Color scheme mirrors the TUI: green available, red booked, yellow mixed.
var (
	imgBackground  = color.RGBA{245, 246, 248, 255}
	imgHeaderText  = color.RGBA{60, 64, 70, 255}
	imgGridLine    = color.RGBA{210, 212, 216, 255}
	imgDayText     = color.RGBA{40, 44, 50, 255}
	imgDimDayText  = color.RGBA{170, 172, 176, 255}
	imgAvailable   = color.RGBA{133, 193, 85, 220}
	imgBooked      = color.RGBA{255, 182, 193, 255}
	imgMixed       = color.RGBA{250, 216, 120, 255}
	imgSlotCount   = color.RGBA{90, 95, 100, 255}
)

var weekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// RenderPNG draws the month grid as a shareable availability image.
func RenderPNG(m Month) ([]byte, error) {
	weeks := m.Weeks()
	if len(weeks) == 0 {
		return nil, fmt.Errorf("empty month grid")
	}

	width := 7 * cellWidth
	height := headerHeight + weekdayRow + len(weeks)*cellHeight

	dc := gg.NewContext(width, height)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(imgBackground)
	dc.Clear()

	// Title.
	title := fmt.Sprintf("%s %d", m.Month, m.Year)
	dc.SetColor(imgHeaderText)
	dc.DrawStringAnchored(title, float64(width)/2, headerHeight/2, 0.5, 0.5)

	// Weekday labels.
	for i, label := range weekdayLabels {
		x := float64(i*cellWidth) + cellWidth/2
		dc.DrawStringAnchored(label, x, headerHeight+weekdayRow/2, 0.5, 0.5)
	}

	for row, week := range weeks {
		for col, day := range week {
			x := float64(col * cellWidth)
			y := float64(headerHeight + weekdayRow + row*cellHeight)
			drawDayCell(dc, day, x, y)
		}
	}

	// Grid lines on top of the cells.
	dc.SetColor(imgGridLine)
	dc.SetLineWidth(1)
	for i := 0; i <= 7; i++ {
		x := float64(i * cellWidth)
		dc.DrawLine(x, headerHeight+weekdayRow, x, float64(height))
	}
	for i := 0; i <= len(weeks); i++ {
		y := float64(headerHeight + weekdayRow + i*cellHeight)
		dc.DrawLine(0, y, float64(width), y)
	}
	dc.Stroke()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawDayCell(dc *gg.Context, day Day, x, y float64) {
	if fill, ok := statusFill(day.Status); ok {
		dc.SetColor(fill)
		dc.DrawRoundedRectangle(x+cellPadding, y+cellPadding,
			cellWidth-2*cellPadding, cellHeight-2*cellPadding, 6)
		dc.Fill()
	}

	if day.InMonth {
		dc.SetColor(imgDayText)
	} else {
		dc.SetColor(imgDimDayText)
	}
	dc.DrawString(fmt.Sprintf("%d", day.Date.Day()), x+10, y+20)

	if n := len(day.Slots); n > 0 {
		dc.SetColor(imgSlotCount)
		label := fmt.Sprintf("%d slot", n)
		if n > 1 {
			label += "s"
		}
		dc.DrawString(label, x+10, y+cellHeight-14)
	}
}

func statusFill(s DayStatus) (color.Color, bool) {
	switch s {
	case StatusAvailable:
		return imgAvailable, true
	case StatusBooked:
		return imgBooked, true
	case StatusMixed:
		return imgMixed, true
	default:
		return nil, false
	}
}
