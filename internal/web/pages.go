package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/talentquiz/internal/insight"
	"github.com/abhisek/talentquiz/internal/radar"
	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/session"
	"github.com/abhisek/talentquiz/internal/talent"
)

//go:embed templates/*.html
var templateFS embed.FS

func parsePages() (*template.Template, error) {
	t, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	return t, nil
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type variantChoice struct {
	Value   talent.Variant
	Name    string
	Default bool
}

type indexPage struct {
	Variants []variantChoice
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var page indexPage
	for _, v := range talent.AllVariants() {
		page.Variants = append(page.Variants, variantChoice{
			Value:   v,
			Name:    v.DisplayName(),
			Default: v == talent.DefaultVariant,
		})
	}
	s.render(w, http.StatusOK, "index.html", page)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	variant, err := talent.ParseVariant(r.FormValue("variant"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	st := s.sessions.Create(variant, strings.TrimSpace(r.FormValue("name")))
	http.Redirect(w, r, quizPath(st.ID, ""), http.StatusSeeOther)
}

type optionView struct {
	Value    int
	Label    string
	Selected bool
}

type stepView struct {
	Index     int
	Number    int
	Answered  bool
	Current   bool
	Reachable bool
}

type questionPage struct {
	ID          string
	VariantName string
	Number      int
	Total       int
	Text        string
	Options     []optionView
	Steps       []stepView
	Answered    int
	Percent     int
	CanPrevious bool
	IsLast      bool
	Error       string
}

func buildQuestionPage(e Entry) questionPage {
	st := e.State
	q, _ := st.Question()
	selected, hasSelection := st.Selected()
	answered, total := session.Progress(st)
	firstOpen := st.FirstUnanswered()

	page := questionPage{
		ID:          st.ID,
		VariantName: st.Variant.DisplayName(),
		Number:      st.Current + 1,
		Total:       total,
		Text:        q.Text,
		Answered:    answered,
		Percent:     int(session.Percent(st) * 100),
		CanPrevious: st.Current > 0,
		IsLast:      st.IsLast(),
	}
	for _, o := range talent.Options() {
		page.Options = append(page.Options, optionView{
			Value:    o.Value,
			Label:    o.Label,
			Selected: hasSelection && selected == o.Value,
		})
	}
	for i := range st.Questions {
		_, done := st.Answers[i]
		page.Steps = append(page.Steps, stepView{
			Index:     i,
			Number:    i + 1,
			Answered:  done,
			Current:   i == st.Current,
			Reachable: done || i == firstOpen,
		})
	}
	return page
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	e, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	if e.State.Phase == session.PhaseSubmitted {
		http.Redirect(w, r, quizPath(e.State.ID, "/result"), http.StatusSeeOther)
		return
	}
	s.render(w, http.StatusOK, "question.html", buildQuestionPage(e))
}

// handleAnswer records the posted option. advance selects the follow-up:
// "auto" moves on except on the last question, "next" moves on or submits,
// anything else only records.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	raw := r.FormValue("value")
	advance := r.FormValue("advance")

	value := 0
	if raw != "" || advance != "next" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, session.ErrInvalidOption.Error(), http.StatusBadRequest)
			return
		}
		value = v
	}

	prev, next, err := s.sessions.Update(id, func(st session.State, now time.Time) (session.State, error) {
		switch {
		case advance == "auto":
			return session.SelectAndAdvance(st, value, now)
		case advance == "next":
			if raw != "" {
				var err error
				if st, err = session.Select(st, value); err != nil {
					return st, err
				}
			}
			return session.Advance(st, now)
		default:
			return session.Select(st, value)
		}
	})
	if errors.Is(err, session.ErrUnanswered) {
		e, getErr := s.sessions.Get(id)
		if getErr != nil {
			http.Error(w, getErr.Error(), statusFor(getErr))
			return
		}
		page := buildQuestionPage(e)
		page.Error = "请先选择一个选项。"
		s.render(w, http.StatusConflict, "question.html", page)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	if prev.Phase == session.PhaseAnswering && next.Phase == session.PhaseSubmitted {
		e, _ := s.sessions.Get(id)
		s.record(r.Context(), next, e.Respondent)
		http.Redirect(w, r, quizPath(id, "/result"), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, quizPath(id, ""), http.StatusSeeOther)
}

func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, _, err := s.sessions.Update(id, func(st session.State, _ time.Time) (session.State, error) {
		return session.Previous(st), nil
	})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	http.Redirect(w, r, quizPath(id, ""), http.StatusSeeOther)
}

func (s *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.Error(w, session.ErrInvalidIndex.Error(), http.StatusBadRequest)
		return
	}
	_, _, err = s.sessions.Update(id, func(st session.State, _ time.Time) (session.State, error) {
		return session.Jump(st, index)
	})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	http.Redirect(w, r, quizPath(id, ""), http.StatusSeeOther)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, _, err := s.sessions.Update(id, func(st session.State, now time.Time) (session.State, error) {
		return session.Restart(st, st.ID, now), nil
	})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	http.Redirect(w, r, quizPath(id, ""), http.StatusSeeOther)
}

type resultPage struct {
	ID          string
	Respondent  string
	VariantName string
	Headline    string
	Chart       template.HTML
	Rows        []scoring.Row
	Duration    string
	Insight     *insight.Report
}

func (s *Server) summary(id string) (Entry, *session.Summary, error) {
	e, err := s.sessions.Get(id)
	if err != nil {
		return Entry{}, nil, err
	}
	sum, err := session.BuildSummary(e.State, scoring.SchemeFor(e.State.Variant))
	if err != nil {
		return Entry{}, nil, err
	}
	return e, sum, nil
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, sum, err := s.summary(id)
	if errors.Is(err, session.ErrNotSubmitted) {
		http.Redirect(w, r, quizPath(id, ""), http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	var chart bytes.Buffer
	if g, err := radar.Project(sum.Scores, radar.ConfigFor(sum.Variant)); err == nil {
		if err := radar.RenderSVG(&chart, g, s.svg); err != nil {
			log.Printf("render chart for session %s: %v", id, err)
			chart.Reset()
		}
	}

	s.render(w, http.StatusOK, "result.html", resultPage{
		ID:          id,
		Respondent:  e.Respondent,
		VariantName: sum.Variant.DisplayName(),
		Headline:    sum.Report.Headline(),
		Chart:       template.HTML(chart.String()),
		Rows:        sum.Report.Rows,
		Duration:    sum.Duration.Round(time.Second).String(),
		Insight:     e.Insight,
	})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	_, sum, err := s.summary(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	g, err := radar.Project(sum.Scores, radar.ConfigFor(sum.Variant))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	var buf bytes.Buffer
	if err := radar.RenderSVG(&buf, g, s.svg); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, sum, err := s.summary(id)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if e.Insight != nil {
		writeJSON(w, http.StatusOK, e.Insight)
		return
	}

	rep, err := s.insights.Describe(r.Context(), insight.Input{
		Respondent: e.Respondent,
		Variant:    sum.Variant,
		Report:     sum.Report,
	})
	if err != nil {
		log.Printf("warning: talent report for session %s fell back: %v", id, err)
	}
	s.sessions.SetInsight(id, rep)
	writeJSON(w, http.StatusOK, rep)
}

func quizPath(id, suffix string) string {
	return "/quiz/" + id + suffix
}
