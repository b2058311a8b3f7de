package gcal

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass/internal/deadline"
	"compass/internal/model"
)

var hacktoberfest = model.Program{
	ID:          3,
	Name:        "Hacktoberfest",
	Description: "Digital celebration of open source software.",
	Status:      "Upcoming",
	Difficulty:  "Beginner",
	Timeline:    "October 1-31",
	Stipend:     "T-Shirt & Digital Badge",
}

func TestBuildLink(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)
	link := BuildLink(hacktoberfest, now)

	require.True(t, strings.HasPrefix(link, RenderURL+"?action=TEMPLATE&"))
	assert.Contains(t, link, "dates=20251001T000000%2F20251001T235959")
	assert.True(t, strings.HasSuffix(link, "&location=Online&sf=true&output=xml"))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.True(t, u.IsAbs())
	assert.Equal(t, "calendar.google.com", u.Host)
	assert.Equal(t, "/calendar/render", u.Path)

	q := u.Query()
	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "⏰ Deadline: Hacktoberfest", q.Get("text"))
	assert.Equal(t, "20251001T000000/20251001T235959", q.Get("dates"))
	assert.Equal(t, "Online", q.Get("location"))
	assert.Equal(t, "true", q.Get("sf"))
	assert.Equal(t, "xml", q.Get("output"))

	details := q.Get("details")
	assert.True(t, strings.HasPrefix(details, "Application deadline for Hacktoberfest.\n\n"))
	assert.Contains(t, details, "Timeline: October 1-31\n")
	assert.Contains(t, details, "Stipend: T-Shirt & Digital Badge\n")
	assert.Contains(t, details, "Difficulty: Beginner\n\n")
	assert.True(t, strings.HasSuffix(details, "Set reminder via OpenSource Compass"))
}

func TestBuildLink_KeyOrder(t *testing.T) {
	link := BuildLink(hacktoberfest, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	raw := link[strings.Index(link, "?")+1:]

	var keys []string
	for _, part := range strings.Split(raw, "&") {
		keys = append(keys, part[:strings.Index(part, "=")])
	}
	assert.Equal(t, []string{"action", "text", "dates", "details", "location", "sf", "output"}, keys)
}

func TestBuildLink_DatesShareDay(t *testing.T) {
	now := time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC)
	programs := []model.Program{
		hacktoberfest,
		{Name: "MLH Fellowship", Timeline: "Year-round"},
		{Name: "GSoC", Timeline: "May - August"},
		{Name: "Empty"},
		{Name: "Weird & <chars> / ?", Timeline: "TBD", Description: "a=b&c=d"},
	}

	for _, p := range programs {
		u, err := url.Parse(BuildLink(p, now))
		require.NoError(t, err, p.Name)

		q := u.Query()
		parts := strings.Split(q.Get("dates"), "/")
		require.Len(t, parts, 2, p.Name)
		assert.Len(t, parts[0], 15, p.Name)
		assert.Len(t, parts[1], 15, p.Name)
		assert.Equal(t, parts[0][:8], parts[1][:8], p.Name)
		assert.Equal(t, "⏰ Deadline: "+p.Name, q.Get("text"))
	}
}

func TestBuildLink_FallbackRollover(t *testing.T) {
	now := time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC)
	u, err := url.Parse(BuildLink(model.Program{Name: "MLH", Timeline: "Year-round"}, now))
	require.NoError(t, err)
	assert.Equal(t, "20260101T000000/20260101T235959", u.Query().Get("dates"))
}

func TestBuildLink_Idempotent(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, BuildLink(hacktoberfest, now), BuildLink(hacktoberfest, now))
}

func TestEventWindow(t *testing.T) {
	start, end := EventWindow(deadline.Date{Year: 2025, Month: 5, Day: 1})
	assert.Equal(t, "20250501T000000", start)
	assert.Equal(t, "20250501T235959", end)
}

func TestBuildLinkFor(t *testing.T) {
	u, err := url.Parse(BuildLinkFor(hacktoberfest, deadline.Date{Year: 2027, Month: 10, Day: 1}))
	require.NoError(t, err)
	assert.Equal(t, "20271001T000000/20271001T235959", u.Query().Get("dates"))
}
