package documents

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
)

const (
	FlyerFilename = "rencontres-vignerons.pdf"

	flyerMaxEntries = 5
	flyerMargin     = 50.0
	flyerMinY       = 60.0
	flyerImageWidth = 120.0
	flyerImageGap   = 14.0
	flyerEntryGap   = 18.0
)

var (
	frenchWeekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}
	frenchMonths   = [...]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet",
		"août", "septembre", "octobre", "novembre", "décembre"}
)

// FormatFrenchDate renders a date as "Samedi 7 mars 2026".
func FormatFrenchDate(t time.Time) string {
	day := frenchWeekdays[t.Weekday()]
	return fmt.Sprintf("%s%s %d %s %d", strings.ToUpper(day[:1]), day[1:], t.Day(), frenchMonths[t.Month()-1], t.Year())
}

type datedEntry struct {
	entry structs.VintnerMeetingEntry
	date  time.Time
}

// UpcomingEntries keeps entries dated today or later, oldest first, at most limit of them.
// Entries with an unparseable date are dropped.
func UpcomingEntries(entries []structs.VintnerMeetingEntry, today time.Time, limit int) []structs.VintnerMeetingEntry {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	dated := make([]datedEntry, 0, len(entries))
	for _, e := range entries {
		d, err := time.Parse(time.DateOnly, strings.TrimSpace(e.Date))
		if err != nil || d.Before(day) {
			continue
		}
		dated = append(dated, datedEntry{entry: e, date: d})
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].date.Before(dated[j].date)
	})

	if limit > 0 && len(dated) > limit {
		dated = dated[:limit]
	}

	out := make([]structs.VintnerMeetingEntry, len(dated))
	for i, d := range dated {
		out[i] = d.entry
	}
	return out
}

// RenderVintnerFlyer draws the single-page A4 flyer of upcoming vintner meetings.
// Entries that no longer fit above the bottom margin are left out.
func (r *Renderer) RenderVintnerFlyer(ctx context.Context, content structs.VintnerMeetingsContent, today time.Time) (*RenderedDocument, error) {
	c := newCanvas("P", "A4", r.compress)
	c.setMeta(content.Title, today)
	c.addPage()

	y := r.drawFlyerHeader(ctx, c, content)

	entries := UpcomingEntries(content.Entries, today, flyerMaxEntries)
	drawn := 0
	for _, entry := range entries {
		if y < flyerMinY {
			break
		}
		y = r.drawFlyerEntry(ctx, c, entry, y)
		drawn++
	}

	if drawn < len(entries) {
		r.logger.Debug("Flyer entries omitted for lack of space",
			gecho.Field("drawn", drawn),
			gecho.Field("upcoming", len(entries)),
		)
	}

	out, err := c.output()
	if err != nil {
		return nil, err
	}

	return &RenderedDocument{
		Filename:    FlyerFilename,
		ContentType: ContentTypePDF,
		Content:     out,
		Pages:       c.pageCount(),
	}, nil
}

func (r *Renderer) drawFlyerHeader(ctx context.Context, c *canvas, content structs.VintnerMeetingsContent) float64 {
	y := c.height - 40

	if logo := r.loadOptional(ctx, r.shop.LogoPath, "flyer logo"); logo != nil {
		lw, lh := fitHeight(logo, 60)
		c.image(logo, (c.width-lw)/2, y-lh, lw, lh)
		y -= lh + 28
	} else {
		y -= 20
	}

	c.centered(content.Title, y, "B", 22, colorWine)
	y -= 28
	if content.Schedule != "" {
		c.centered(content.Schedule, y, "B", 16, colorGold)
		y -= 22
	}
	if content.Address != "" {
		c.centered(content.Address, y, "", 11, colorInk)
		y -= 14
	}
	if content.AddressDetail != "" {
		c.centered(content.AddressDetail, y, "", 9, colorMuted)
		y -= 12
	}

	y -= 8
	c.line(flyerMargin, y, c.width-flyerMargin, y, 0.5, colorHairline)
	return y - 24
}

// drawFlyerEntry lays out one meeting from its top y and returns the y below it.
func (r *Renderer) drawFlyerEntry(ctx context.Context, c *canvas, entry structs.VintnerMeetingEntry, top float64) float64 {
	textWidth := c.width - 2*flyerMargin

	var img *Asset
	if entry.Image != "" {
		img = r.loadOptional(ctx, entry.Image, "flyer entry image")
	}
	if img != nil {
		textWidth -= flyerImageWidth + flyerImageGap
	}

	y := top
	if d, err := time.Parse(time.DateOnly, strings.TrimSpace(entry.Date)); err == nil {
		heading := FormatFrenchDate(d)
		c.text(heading, flyerMargin, y, "B", 13, colorWine)
		w := c.textWidth(heading, "B", 13)
		c.line(flyerMargin, y-2, flyerMargin+w, y-2, 0.75, colorWine)
		y -= 18
	}

	ops, endY := LayoutWrapped(ParseRichText(entry.Title), flyerMargin, y, textWidth, 12, c.metrics(false), c.metrics(true), 15)
	c.drawOps(ops, colorInk)
	y = endY

	for _, bullet := range entry.Bullets {
		segments := append([]Segment{{Text: "- "}}, ParseRichText(bullet)...)
		ops, endY := LayoutWrapped(segments, flyerMargin+8, y, textWidth-8, 10.5, c.metrics(false), c.metrics(true), 13)
		c.drawOps(ops, colorInk)
		y = endY
	}

	if img != nil {
		iw, ih := fitWidth(img, flyerImageWidth)
		c.image(img, c.width-flyerMargin-iw, top+10-ih, iw, ih)
		y = min(y, top+10-ih)
	}

	return y - flyerEntryGap
}
