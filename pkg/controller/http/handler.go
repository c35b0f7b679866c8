package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
	"github.com/quitswarm/quitswarm/pkg/utils/errutil"
	"github.com/quitswarm/quitswarm/pkg/utils/safe"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func (s *Server) decideHandler(w http.ResponseWriter, r *http.Request) {
	var profile model.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode profile"), http.StatusBadRequest)
		return
	}

	decision, err := s.uc.Decide(r.Context(), &profile)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	respondJSON(w, r, http.StatusOK, decision)
}

func (s *Server) feedbackHandler(w http.ResponseWriter, r *http.Request) {
	caseID := types.CaseID(chi.URLParam(r, "caseID"))

	var req struct {
		Outcome string `json:"outcome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode feedback"), http.StatusBadRequest)
		return
	}

	outcome, err := types.ParseOutcome(req.Outcome)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	weights, err := s.uc.SubmitFeedback(r.Context(), caseID, outcome)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"case_id": caseID,
		"outcome": outcome,
		"weights": weights,
	})
}

func (s *Server) similarHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Profile model.Profile `json:"profile"`
		Limit   int           `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode similarity request"), http.StatusBadRequest)
		return
	}
	if req.Limit <= 0 {
		req.Limit = s.uc.Policy().SimilarLimit
	}

	similar, err := s.uc.FindSimilar(r.Context(), &req.Profile, req.Limit)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}
	if similar == nil {
		similar = []model.SimilarCase{}
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"similar_cases": similar,
	})
}

func (s *Server) weightsHandler(w http.ResponseWriter, r *http.Request) {
	weights, err := s.uc.ListWeights(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"weights": weights,
	})
}

func (s *Server) caseHandler(w http.ResponseWriter, r *http.Request) {
	caseID := types.CaseID(chi.URLParam(r, "caseID"))

	record, err := s.uc.GetCase(r.Context(), caseID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	respondJSON(w, r, http.StatusOK, record)
}
