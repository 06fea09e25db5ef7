// Package render рисует недельную сетку доступных слотов.
// Картинка используется как предпросмотр расписания в чате с ботом.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"github.com/genetic-miniapp/backend/internal/model"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth      = 1120
	imageHeight     = 640
	headerHeight    = 60
	leftLabelsWidth = 70
	dayPadding      = 6
	slotRadius      = 4.0
	totalDays       = 7

	firstHour = 10 // МСК
	lastHour  = 18
)

// Цветовая схема
var (
	bgColor         = color.RGBA{245, 246, 248, 255}
	headerTextColor = color.RGBA{80, 85, 90, 220}
	hourLabelColor  = color.RGBA{110, 115, 120, 200}
	gridLineColor   = color.NRGBA{205, 208, 212, 255}
	weekendColor    = color.NRGBA{232, 232, 234, 255}

	slotOnlineColor  = color.RGBA{133, 193, 85, 220}
	slotOfflineColor = color.RGBA{120, 170, 220, 220}
	slotBookedColor  = color.RGBA{255, 182, 193, 255}
	slotTextColor    = color.RGBA{20, 24, 28, 230}
)

// WeekImage рисует сетку слотов за 7 дней начиная с fromDay и отдаёт PNG
func WeekImage(fromDay time.Time, slots []model.AvailabilitySlot) ([]byte, error) {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := float64(imageWidth-leftLabelsWidth) / totalDays
	hourHeight := float64(imageHeight-headerHeight) / float64(lastHour-firstHour)

	// Заголовки дней и фон выходных
	for i := 0; i < totalDays; i++ {
		day := fromDay.AddDate(0, 0, i)
		x := float64(leftLabelsWidth) + float64(i)*dayWidth

		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			dc.SetColor(weekendColor)
			dc.DrawRectangle(x, headerHeight, dayWidth, float64(imageHeight-headerHeight))
			dc.Fill()
		}

		dc.SetColor(headerTextColor)
		dc.DrawStringAnchored(day.Format("Mon 02.01"), x+dayWidth/2, headerHeight/2, 0.5, 0.5)
	}

	// Часовая шкала и линии сетки
	for hour := firstHour; hour <= lastHour; hour++ {
		y := float64(headerHeight) + float64(hour-firstHour)*hourHeight

		dc.SetColor(gridLineColor)
		dc.DrawLine(leftLabelsWidth, y, imageWidth, y)
		dc.Stroke()

		if hour < lastHour {
			dc.SetColor(hourLabelColor)
			dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hour), leftLabelsWidth/2, y+hourHeight/2, 0.5, 0.5)
		}
	}

	// Слоты
	for _, slot := range slots {
		msk := slot.StartUTC.UTC().Add(model.MSKOffset)
		dayIndex := int(msk.Sub(fromDay.Add(model.MSKOffset)).Hours() / 24)
		if dayIndex < 0 || dayIndex >= totalDays {
			continue
		}
		if msk.Hour() < firstHour || msk.Hour() >= lastHour {
			continue
		}

		x := float64(leftLabelsWidth) + float64(dayIndex)*dayWidth + dayPadding
		y := float64(headerHeight) + float64(msk.Hour()-firstHour)*hourHeight + dayPadding/2
		w := dayWidth - 2*dayPadding
		h := hourHeight - dayPadding

		dc.SetColor(slotColor(slot))
		dc.DrawRoundedRectangle(x, y, w, h, slotRadius)
		dc.Fill()

		// basicfont покрывает только ASCII, поэтому подписи латиницей
		dc.SetColor(slotTextColor)
		label := fmt.Sprintf("%02d:00 %s", msk.Hour(), slot.Format)
		if slot.Booked {
			label = fmt.Sprintf("%02d:00 booked", msk.Hour())
		}
		dc.DrawStringAnchored(label, x+w/2, y+h/2, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}

func slotColor(slot model.AvailabilitySlot) color.Color {
	if slot.Booked {
		return slotBookedColor
	}
	if slot.Format == model.FormatOnline {
		return slotOnlineColor
	}
	return slotOfflineColor
}
