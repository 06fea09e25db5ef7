package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInviteTimestamps(t *testing.T) {
	start, err := time.Parse(time.RFC3339, "2025-03-10T09:00:00.000Z")
	require.NoError(t, err)
	end, err := time.Parse(time.RFC3339, "2025-03-10T10:00:00.000Z")
	require.NoError(t, err)

	invite := BuildInvite(Event{Start: start, End: end, Summary: "Консультация"})

	assert.Contains(t, invite, "DTSTART:20250310T090000Z")
	assert.Contains(t, invite, "DTEND:20250310T100000Z")
	assert.Contains(t, invite, "BEGIN:VEVENT")
	assert.Contains(t, invite, "END:VEVENT")
	assert.True(t, strings.HasSuffix(invite, "END:VCALENDAR\r\n"))
}

func TestBuildInviteEscaping(t *testing.T) {
	invite := BuildInvite(Event{
		Start:       time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
		Summary:     "Приём; онлайн, вопросы\nпо NGS",
		Description: `C:\slots`,
	})

	assert.Contains(t, invite, `SUMMARY:Приём\; онлайн\, вопросы\nпо NGS`)
	assert.Contains(t, invite, `DESCRIPTION:C:\\slots`)
}

func TestBuildInviteDeterministicExceptUIDAndStamp(t *testing.T) {
	ev := Event{
		Start:       time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
		Summary:     "Консультация",
		Description: "Первичный приём",
		Location:    "Москва",
	}

	first := stripVolatileLines(BuildInvite(ev))
	second := stripVolatileLines(BuildInvite(ev))
	assert.Equal(t, first, second)

	// UID обязан отличаться между вызовами
	assert.NotEqual(t, volatileLines(BuildInvite(ev))["UID"], volatileLines(BuildInvite(ev))["UID"])
}

func stripVolatileLines(invite string) []string {
	var stable []string
	for _, line := range strings.Split(invite, "\r\n") {
		if strings.HasPrefix(line, "UID:") || strings.HasPrefix(line, "DTSTAMP:") {
			continue
		}
		stable = append(stable, line)
	}
	return stable
}

func volatileLines(invite string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(invite, "\r\n") {
		if name, value, ok := strings.Cut(line, ":"); ok {
			if name == "UID" || name == "DTSTAMP" {
				out[name] = value
			}
		}
	}
	return out
}
