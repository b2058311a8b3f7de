package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"compass/internal/catalog"
	"compass/internal/deadline"
	"compass/internal/gcal"
	"compass/internal/ics"
	appLog "compass/internal/log"
	"compass/internal/model"
)

// programCard is the JSON shape of a catalog card.
type programCard struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Image         string `json:"image,omitempty"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	Difficulty    string `json:"difficulty"`
	Timeline      string `json:"timeline"`
	Stipend       string `json:"stipend"`
	Contributors  int    `json:"contributors"`
	Issues        int    `json:"issues"`
	Organizations int    `json:"organizations"`

	// CalendarURL is set only when the program gets an "Add to Calendar" action.
	CalendarURL string `json:"calendar_url,omitempty"`
}

// programDetail is the JSON shape of the detail (modal) view.
type programDetail struct {
	programCard
	Contributions []string `json:"contributions"`
	IssuesList    []string `json:"issues_list"`
	// Deadline is the inferred deadline (YYYY-MM-DD) when a calendar link is offered.
	Deadline string `json:"deadline,omitempty"`
}

type programsResponse struct {
	Programs []programCard `json:"programs"`
	Total    int           `json:"total"`
	Origin   string        `json:"origin"`
}

type issuesResponse struct {
	ProgramID int      `json:"program_id"`
	Issues    int      `json:"issues"`
	Top       []string `json:"top"`
	Summary   string   `json:"summary"`
}

type deadlineDTO struct {
	ProgramID   int    `json:"program_id"`
	ProgramName string `json:"program_name"`
	Timeline    string `json:"timeline"`
	Date        string `json:"date"`
	CalendarURL string `json:"calendar_url"`
}

type deadlinesResponse struct {
	Deadlines   []deadlineDTO `json:"deadlines"`
	HorizonDays int           `json:"horizon_days"`
	TimeZone    string        `json:"timezone"`
}

// issueSummaryCount matches the three issues shown by "View Issues".
const issueSummaryCount = 3

func (s *Server) clock() time.Time {
	return s.now().In(s.loc)
}

func newCard(p model.Program) programCard {
	return programCard{
		ID:            p.ID,
		Name:          p.Name,
		Image:         p.Image,
		Description:   p.Description,
		Status:        p.Status,
		Difficulty:    p.Difficulty,
		Timeline:      p.Timeline,
		Stipend:       p.Stipend,
		Contributors:  p.Contributors,
		Issues:        p.Issues,
		Organizations: p.Organizations,
	}
}

// attachCalendar sets the card's calendar link when offer is true. A
// failure here must not break the card, so panics are logged and the card
// is served without a link.
func (s *Server) attachCalendar(card *programCard, p model.Program, offer bool, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			card.CalendarURL = ""
			appLog.Error("adding calendar link failed", fmt.Errorf("%v", r), "program", p.Name)
		}
	}()

	if !offer {
		return
	}
	card.CalendarURL = gcal.BuildLink(p, now)
	s.metrics.LinkGenerated()
}

// handlePrograms lists catalog cards.
//
// GET /api/programs?difficulty=Beginner&status=Active&search=summer
func (s *Server) handlePrograms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := catalog.Filter{
		Difficulty: q.Get("difficulty"),
		Status:     q.Get("status"),
		Search:     q.Get("search"),
	}

	now := s.clock()
	programs := s.store.Current().Filter(filter)
	origin, _ := s.store.Origin()

	cards := make([]programCard, 0, len(programs))
	for _, p := range programs {
		card := newCard(p)
		offer := gcal.ShouldOfferCalendar(p)
		s.metrics.GateDecision("card", offer)
		s.attachCalendar(&card, p, offer, now)
		cards = append(cards, card)
	}

	writeJSON(w, http.StatusOK, programsResponse{
		Programs: cards,
		Total:    len(cards),
		Origin:   string(origin),
	})
}

// lookup resolves the {id} path value against the current catalog,
// writing the error response itself when it fails.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (model.Program, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return model.Program{}, false
	}
	p, ok := s.store.Current().Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, "program not found")
		return model.Program{}, false
	}
	return p, true
}

// handleProgram returns the detail view for one program. The calendar link
// uses the stricter detail gate (the timeline must name a month).
func (s *Server) handleProgram(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}

	now := s.clock()
	offer := gcal.ShouldOfferInDetail(p)
	s.metrics.GateDecision("detail", offer)

	detail := programDetail{
		programCard:   newCard(p),
		Contributions: nonNil(p.Contributions),
		IssuesList:    nonNil(p.IssuesList),
	}
	s.attachCalendar(&detail.programCard, p, offer, now)
	if detail.CalendarURL != "" {
		detail.Deadline = deadline.Extract(p.Timeline, now).String()
	}

	writeJSON(w, http.StatusOK, detail)
}

// handleCalendarRedirect sends the browser straight to Google Calendar.
func (s *Server) handleCalendarRedirect(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}

	offer := gcal.ShouldOfferCalendar(p)
	s.metrics.GateDecision("redirect", offer)
	if !offer {
		writeError(w, http.StatusNotFound, "no calendar reminder for this program")
		return
	}

	s.metrics.LinkGenerated()
	http.Redirect(w, r, gcal.BuildLink(p, s.clock()), http.StatusFound)
}

func (s *Server) handleIssues(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}

	top := nonNil(p.IssuesList)
	if len(top) > issueSummaryCount {
		top = top[:issueSummaryCount]
	}
	writeJSON(w, http.StatusOK, issuesResponse{
		ProgramID: p.ID,
		Issues:    p.Issues,
		Top:       top,
		Summary:   catalog.IssueSummary(p, issueSummaryCount),
	})
}

// handleDeadlines lists projected deadlines.
//
// GET /api/deadlines?days=90
//   - days: look-ahead window (default config horizon_days)
func (s *Server) handleDeadlines(w http.ResponseWriter, r *http.Request) {
	days := parseIntDefault(r.URL.Query().Get("days"), s.cfg.HorizonDays)
	if days <= 0 {
		days = s.cfg.HorizonDays
	}

	upcoming := ics.Upcoming(s.store.Current().All(), s.clock(), days)

	dtos := make([]deadlineDTO, 0, len(upcoming))
	for _, d := range upcoming {
		dtos = append(dtos, deadlineDTO{
			ProgramID:   d.Program.ID,
			ProgramName: d.Program.Name,
			Timeline:    d.Program.Timeline,
			Date:        d.Date.Format(time.DateOnly),
			CalendarURL: gcal.BuildLinkFor(d.Program, deadline.FromTime(d.Date)),
		})
	}

	writeJSON(w, http.StatusOK, deadlinesResponse{
		Deadlines:   dtos,
		HorizonDays: days,
		TimeZone:    s.loc.String(),
	})
}

// handleFeed serves the deadline feed for calendar subscriptions.
func (s *Server) handleFeed(w http.ResponseWriter, _ *http.Request) {
	body := ics.Export(s.store.Current().All(), s.clock(), ics.ExportOptions{
		Name:     "Open source program deadlines",
		Location: s.loc,
	})
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="deadlines.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
