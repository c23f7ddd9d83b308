package common

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/valegrete/academia_bot/internal/controller/callbacks/common/formatting"
)

// Constantes de tamaño y márgenes
const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 80
	leftLabelsWidth = 70
	dayPaddingX     = 6
	minBlockHeight  = 10.0
	blockRadius     = 6.0
	totalWeekDays   = 7

	defaultMinHour = 8
	defaultMaxHour = 21
)

// Colores
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{200, 200, 200, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{228, 228, 228, 255}
	todayBgColor   = color.NRGBA{255, 227, 180, 160}

	blockColor         = color.RGBA{133, 193, 85, 230}
	blockEmergency     = color.RGBA{255, 182, 80, 240}
	blockConflictColor = color.RGBA{235, 105, 105, 240}
	blockTextColor     = color.RGBA{20, 24, 28, 255}
)

// WeekBlock es una clase ya colocada en la cuadrícula semanal.
type WeekBlock struct {
	Name        string
	StartMinute int
	EndMinute   int
	Emergency   bool
	Conflict    bool
}

// WeekDay es una columna de la cuadrícula: una fecha con sus clases.
type WeekDay struct {
	Date   time.Time
	Blocks []WeekBlock
}

// RenderWeekImage dibuja la semana de un profesor como imagen PNG:
// una columna por día, bloques por clase, conflictos en rojo y clases
// de emergencia en naranja.
func RenderWeekImage(days []WeekDay, today time.Time) ([]byte, error) {
	if len(days) == 0 || len(days) > totalWeekDays {
		return nil, fmt.Errorf("expected 1..7 days, got %d", len(days))
	}

	minHour, maxHour := hourBounds(days)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	gridTop := float64(headerHeight)
	gridHeight := float64(imageHeight) - gridTop - 20
	dayWidth := float64(imageWidth-leftLabelsWidth) / float64(len(days))
	minuteHeight := gridHeight / float64((maxHour-minHour+1)*60)

	// Fondo alternado por columna, con el día actual resaltado.
	for i, day := range days {
		x := float64(leftLabelsWidth) + float64(i)*dayWidth
		if i%2 == 0 {
			dc.SetColor(evenDayColor)
		} else {
			dc.SetColor(oddDayColor)
		}
		dc.DrawRectangle(x, gridTop, dayWidth, gridHeight)
		dc.Fill()

		if sameDate(day.Date, today) {
			dc.SetColor(todayBgColor)
			dc.DrawRectangle(x, gridTop, dayWidth, gridHeight)
			dc.Fill()
		}

		dc.SetColor(textColor)
		label := fmt.Sprintf("%s %s",
			formatting.GetWeekdayShortName(int(day.Date.Weekday())),
			day.Date.Format("02/01"))
		dc.DrawStringAnchored(label, x+dayWidth/2, gridTop/2, 0.5, 0.5)
	}

	// Líneas y etiquetas de hora.
	for hour := minHour; hour <= maxHour+1; hour++ {
		y := gridTop + float64((hour-minHour)*60)*minuteHeight
		dc.SetColor(hourLineColor)
		dc.DrawLine(float64(leftLabelsWidth), y, float64(imageWidth), y)
		dc.Stroke()

		if hour <= maxHour {
			dc.SetColor(hourLabelColor)
			dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hour), float64(leftLabelsWidth)/2, y+6, 0.5, 0.5)
		}
	}

	// Bloques de clase.
	for i, day := range days {
		x := float64(leftLabelsWidth) + float64(i)*dayWidth + dayPaddingX
		width := dayWidth - 2*dayPaddingX

		for _, block := range day.Blocks {
			y := gridTop + float64(block.StartMinute-minHour*60)*minuteHeight
			height := float64(block.EndMinute-block.StartMinute) * minuteHeight
			if height < minBlockHeight {
				height = minBlockHeight
			}

			switch {
			case block.Conflict:
				dc.SetColor(blockConflictColor)
			case block.Emergency:
				dc.SetColor(blockEmergency)
			default:
				dc.SetColor(blockColor)
			}
			dc.DrawRoundedRectangle(x, y, width, height, blockRadius)
			dc.Fill()

			dc.SetColor(blockTextColor)
			label := block.Name
			timeLabel := formatting.FormatMinuteRange(block.StartMinute, block.EndMinute)
			dc.DrawStringAnchored(label, x+width/2, y+height/2-7, 0.5, 0.5)
			dc.DrawStringAnchored(timeLabel, x+width/2, y+height/2+7, 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}

// hourBounds ajusta el rango vertical a las clases de la semana, con
// un rango por defecto si no hay ninguna.
func hourBounds(days []WeekDay) (int, int) {
	minHour, maxHour := 24, -1
	for _, day := range days {
		for _, block := range day.Blocks {
			if h := block.StartMinute / 60; h < minHour {
				minHour = h
			}
			if h := (block.EndMinute + 59) / 60; h > maxHour {
				maxHour = h
			}
		}
	}
	if maxHour < 0 {
		return defaultMinHour, defaultMaxHour
	}
	if maxHour > 23 {
		maxHour = 23
	}
	return minHour, maxHour
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
