package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/talentquiz/internal/radar"
	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/talent"
)

type optionJSON struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type questionJSON struct {
	Index    int             `json:"index"`
	Text     string          `json:"text"`
	Category talent.Category `json:"category"`
}

type questionsResponse struct {
	Variant   talent.Variant `json:"variant"`
	Name      string         `json:"name"`
	Options   []optionJSON   `json:"options"`
	Questions []questionJSON `json:"questions"`
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	variant, err := talent.ParseVariant(r.URL.Query().Get("variant"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := questionsResponse{Variant: variant, Name: variant.DisplayName()}
	for _, o := range talent.Options() {
		resp.Options = append(resp.Options, optionJSON{Value: o.Value, Label: o.Label})
	}
	for i, q := range talent.Bank(variant) {
		resp.Questions = append(resp.Questions, questionJSON{Index: i, Text: q.Text, Category: q.Category})
	}
	writeJSON(w, http.StatusOK, resp)
}

type scoreRequest struct {
	Variant string          `json:"variant"`
	Answers scoring.Answers `json:"answers"`
}

type scoreResponse struct {
	Variant  talent.Variant     `json:"variant"`
	Complete bool               `json:"complete"`
	Scores   scoring.ScoreTable `json:"scores"`
	Total    int                `json:"total"`
	Headline string             `json:"headline"`
	Report   scoring.Report     `json:"report"`
	Geometry *radar.Geometry    `json:"geometry"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	variant, err := talent.ParseVariant(req.Variant)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "answers required")
		return
	}

	bank := talent.Bank(variant)
	if err := scoring.Validate(req.Answers, bank); err != nil {
		var invalid *scoring.InvalidAnswerError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusUnprocessableEntity, invalid.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	scores := scoring.Aggregate(req.Answers, bank)
	report := scoring.BuildReport(scores, scoring.SchemeFor(variant))
	geometry, err := radar.Project(scores, radar.ConfigFor(variant))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, scoreResponse{
		Variant:  variant,
		Complete: scoring.Complete(req.Answers, bank),
		Scores:   scores,
		Total:    scores.Total(),
		Headline: report.Headline(),
		Report:   report,
		Geometry: geometry,
	})
}
