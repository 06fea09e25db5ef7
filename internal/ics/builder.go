// Package ics генерирует календарные приглашения (VEVENT) для записи
// на консультацию. Только генерация — разбор .ics файлов не поддерживается.
package ics

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// timestampLayout компактная UTC-форма времени календарного события
const timestampLayout = "20060102T150405Z"

// Event описывает событие приглашения
type Event struct {
	Start       time.Time
	End         time.Time
	Summary     string
	Description string
	Location    string
}

// BuildInvite собирает текст приглашения. Результат детерминирован для
// одинаковых входных данных, кроме UID и DTSTAMP.
func BuildInvite(ev Event) string {
	return buildInvite(ev, uuid.NewString(), time.Now().UTC())
}

func buildInvite(ev Event, uid string, stamp time.Time) string {
	var b strings.Builder

	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:-//genetic-miniapp//booking//RU")
	line("CALSCALE:GREGORIAN")
	line("METHOD:PUBLISH")
	line("BEGIN:VEVENT")
	line("UID:" + uid)
	line("DTSTAMP:" + stamp.UTC().Format(timestampLayout))
	line("DTSTART:" + ev.Start.UTC().Format(timestampLayout))
	line("DTEND:" + ev.End.UTC().Format(timestampLayout))
	line("SUMMARY:" + escapeText(ev.Summary))
	if ev.Description != "" {
		line("DESCRIPTION:" + escapeText(ev.Description))
	}
	if ev.Location != "" {
		line("LOCATION:" + escapeText(ev.Location))
	}
	line("END:VEVENT")
	line("END:VCALENDAR")

	return b.String()
}

// escapeText экранирует текстовое значение по правилам RFC 5545:
// обратный слэш, перевод строки, запятая и точка с запятой
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	return s
}
