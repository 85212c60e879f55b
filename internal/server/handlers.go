package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-ats/internal/analysis"
	"github.com/jonathan/resume-ats/internal/server/middleware"
	"github.com/jonathan/resume-ats/internal/types"
)

// maxBodyBytes bounds request bodies; pasted resumes are well under this.
const maxBodyBytes = 1 << 20

// HistoryResponse lists a user's analyses, newest first.
type HistoryResponse struct {
	Analyses []types.AnalysisRecord `json:"analyses"`
	Count    int                    `json:"count"`
}

// TrendResponse lists a user's scores, oldest first.
type TrendResponse struct {
	Points []types.TrendPoint `json:"points"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	// an empty resume has its own message rather than a generic validation failure
	if strings.TrimSpace(req.ResumeText) == "" {
		s.writeError(w, r, &analysis.InputError{Message: analysis.MissingResumeMessage})
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	resp, err := s.engine.AnalyzeAndSave(r.Context(), middleware.UserIDOrNil(r), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleSaveAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.writeError(w, r, &ErrUnauthorized{Reason: err.Error()})
		return
	}

	var req types.SaveAnalysisRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	record, err := s.engine.SaveAnalysis(r.Context(), userID, req.JobTitle, req.Company, *req.Result)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, record)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.writeError(w, r, &ErrUnauthorized{Reason: err.Error()})
		return
	}

	records, err := s.engine.GetHistory(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, HistoryResponse{Analyses: records, Count: len(records)})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.writeError(w, r, &ErrUnauthorized{Reason: err.Error()})
		return
	}

	stats, err := s.engine.GetStats(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := types.StatsResponse{Stats: stats}
	if stats != nil {
		tier := types.TierFor(stats.AverageScore)
		resp.Tier = &tier
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.writeError(w, r, &ErrUnauthorized{Reason: err.Error()})
		return
	}

	points, err := s.engine.GetTrend(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, TrendResponse{Points: points})
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.writeError(w, r, &ErrUnauthorized{Reason: err.Error()})
		return
	}

	recordID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "id", Message: "invalid analysis ID"})
		return
	}

	if err := s.engine.DeleteAnalysis(r.Context(), userID, recordID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrValidation{Field: "body", Message: "request body too large"}
		}
		return &ErrValidation{Field: "body", Message: "invalid request body"}
	}
	return nil
}
