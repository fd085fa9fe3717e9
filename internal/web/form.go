package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/session"
	"github.com/abhisek/talentquiz/internal/talent"
)

// formVariant is the bank the single-page form shows when none is asked for.
const formVariant = talent.VariantStatement

type formQuestion struct {
	Index    int
	Number   int
	Text     string
	Category talent.Category
	Options  []optionView
	Missing  bool
}

type formPage struct {
	Variant     talent.Variant
	VariantName string
	Respondent  string
	Questions   []formQuestion
	Error       string
}

func buildFormPage(v talent.Variant, respondent string, answers scoring.Answers, markMissing bool) formPage {
	page := formPage{
		Variant:     v,
		VariantName: v.DisplayName(),
		Respondent:  respondent,
	}
	for i, q := range talent.Bank(v) {
		chosen, ok := answers[i]
		fq := formQuestion{
			Index:    i,
			Number:   i + 1,
			Text:     q.Text,
			Category: q.Category,
			Missing:  markMissing && !ok,
		}
		for _, o := range talent.Options() {
			fq.Options = append(fq.Options, optionView{
				Value:    o.Value,
				Label:    o.Label,
				Selected: ok && chosen == o.Value,
			})
		}
		page.Questions = append(page.Questions, fq)
	}
	return page
}

func formVariantFrom(raw string) (talent.Variant, error) {
	if strings.TrimSpace(raw) == "" {
		return formVariant, nil
	}
	return talent.ParseVariant(raw)
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	v, err := formVariantFrom(r.URL.Query().Get("variant"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.render(w, http.StatusOK, "form.html", buildFormPage(v, "", nil, false))
}

// parseFormAnswers reads the q<index> fields. Empty fields are unanswered.
func parseFormAnswers(r *http.Request, n int) (scoring.Answers, error) {
	answers := scoring.Answers{}
	for i := 0; i < n; i++ {
		raw := strings.TrimSpace(r.PostFormValue("q" + strconv.Itoa(i)))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &scoring.InvalidAnswerError{Index: i, Value: 0, Reason: fmt.Sprintf("not a number: %q", raw)}
		}
		answers[i] = v
	}
	return answers, nil
}

// handleFormSubmit scores a whole form at once. A complete form becomes a
// submitted session so it shares the result, chart and insight pages with
// the step-by-step flow.
func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	v, err := formVariantFrom(r.PostFormValue("variant"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondent := strings.TrimSpace(r.PostFormValue("name"))
	bank := talent.Bank(v)

	answers, err := parseFormAnswers(r, len(bank))
	if err == nil {
		err = scoring.Validate(answers, bank)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !scoring.Complete(answers, bank) {
		page := buildFormPage(v, respondent, answers, true)
		page.Error = fmt.Sprintf("还有 %d 道题未作答。", len(bank)-len(answers))
		s.render(w, http.StatusUnprocessableEntity, "form.html", page)
		return
	}

	st := s.sessions.Create(v, respondent)
	_, next, err := s.sessions.Update(st.ID, func(cur session.State, now time.Time) (session.State, error) {
		for i := range cur.Questions {
			var err error
			if cur, err = session.Select(cur, answers[i]); err != nil {
				return cur, err
			}
			if cur, err = session.Advance(cur, now); err != nil {
				return cur, err
			}
		}
		return cur, nil
	})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	s.record(r.Context(), next, respondent)
	http.Redirect(w, r, quizPath(st.ID, "/result"), http.StatusSeeOther)
}
