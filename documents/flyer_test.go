package documents

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"caviste_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpcomingEntries(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	entries := []structs.VintnerMeetingEntry{
		{Date: "2026-04-02", Title: "c"},
		{Date: "2026-03-09", Title: "past"},
		{Date: "2026-03-10", Title: "a"},
		{Date: "not a date", Title: "broken"},
		{Date: "2026-03-21", Title: "b"},
		{Date: "2026-04-02", Title: "c2"},
		{Date: "2026-05-01", Title: "d"},
		{Date: "2026-06-01", Title: "e"},
	}

	got := UpcomingEntries(entries, today, 5)

	titles := make([]string, len(got))
	for i, e := range got {
		titles[i] = e.Title
	}
	assert.Equal(t, []string{"a", "b", "c", "c2", "d"}, titles)
}

func TestUpcomingEntries_Empty(t *testing.T) {
	assert.Empty(t, UpcomingEntries(nil, time.Now(), 5))
}

func TestFormatFrenchDate(t *testing.T) {
	assert.Equal(t, "Samedi 7 mars 2026", FormatFrenchDate(time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Mardi 18 août 2026", FormatFrenchDate(time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC)))
}

func flyerContent(n int, start time.Time) structs.VintnerMeetingsContent {
	content := structs.VintnerMeetingsContent{
		Title:         "Rencontres vignerons",
		Schedule:      "Samedi de 10h à 18h",
		Address:       "12 rue des Vendanges, 21200 Beaune",
		AddressDetail: "Entrée par la cour",
	}
	for i := 0; i < n; i++ {
		content.Entries = append(content.Entries, structs.VintnerMeetingEntry{
			Date:    start.AddDate(0, 0, 7*i).Format(time.DateOnly),
			Title:   fmt.Sprintf("Domaine <strong>numero %d</strong>", i+1),
			Bullets: []string{"Degustation des cuvees", "Rencontre avec le <b>vigneron</b>"},
		})
	}
	return content
}

func TestRenderVintnerFlyer(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	r := testRenderer(t, t.TempDir())

	out, err := r.RenderVintnerFlyer(context.Background(), flyerContent(3, today), today)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Pages)
	assert.Equal(t, FlyerFilename, out.Filename)
	assert.True(t, bytes.HasPrefix(out.Content, []byte("%PDF")))

	pdf := string(out.Content)
	assert.Contains(t, pdf, "Rencontres vignerons")
	assert.Contains(t, pdf, "numero 1")
	assert.Contains(t, pdf, "numero 3")
	assert.Contains(t, pdf, "Degustation des cuvees")
}

func TestRenderVintnerFlyer_CapsAtFiveEntries(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	r := testRenderer(t, t.TempDir())

	out, err := r.RenderVintnerFlyer(context.Background(), flyerContent(7, today), today)
	require.NoError(t, err)

	pdf := string(out.Content)
	assert.Equal(t, 1, out.Pages)
	assert.NotContains(t, pdf, "numero 6")
	assert.NotContains(t, pdf, "numero 7")
}

func TestRenderVintnerFlyer_StopsAtBottomMargin(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	content := flyerContent(5, today)
	for i := range content.Entries {
		for j := 0; j < 8; j++ {
			content.Entries[i].Bullets = append(content.Entries[i].Bullets, fmt.Sprintf("Point supplementaire %d", j))
		}
	}
	r := testRenderer(t, t.TempDir())

	out, err := r.RenderVintnerFlyer(context.Background(), content, today)
	require.NoError(t, err)

	pdf := string(out.Content)
	assert.Equal(t, 1, out.Pages)
	assert.Contains(t, pdf, "numero 1")
	assert.NotContains(t, pdf, "numero 5")
}

func TestRenderVintnerFlyer_ImageFallbacks(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	dir := t.TempDir()
	writeAsset(t, dir, "domaine.png", pngBytes(t, 60, 40))

	content := flyerContent(2, today)
	content.Entries[0].Image = "domaine.png"
	content.Entries[1].Image = "missing.png"

	r := testRenderer(t, dir)
	out, err := r.RenderVintnerFlyer(context.Background(), content, today)
	require.NoError(t, err)

	pdf := string(out.Content)
	assert.Contains(t, pdf, "/Subtype /Image")
	assert.Contains(t, pdf, "numero 2")
}
