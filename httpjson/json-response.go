package httpjson

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/algoprep/grader/srvcerror"
)

// GradeResponse is the stable response shape for grading requests.
// Callers can always check len(Results) regardless of failure mode.
type GradeResponse struct {
	Results  []any    `json:"results"`
	Warnings []string `json:"warnings,omitempty"`
	ErrCode  string   `json:"error,omitempty"`
	ErrMsg   string   `json:"message,omitempty"`
}

func WriteResultsJson(w http.ResponseWriter, results []any, warnings []string) {
	resp := GradeResponse{Results: results, Warnings: warnings}
	if resp.Results == nil {
		resp.Results = []any{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func WriteErrorJson(w http.ResponseWriter, errMsg string, statusCode int, errCode string) {
	resp := GradeResponse{
		Results: []any{},
		ErrCode: errCode,
		ErrMsg:  errMsg,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func writeInternalErrorJson(w http.ResponseWriter) {
	WriteErrorJson(w,
		http.StatusText(http.StatusInternalServerError),
		http.StatusInternalServerError,
		srvcerror.ErrCodeInternalServerError)
}

func HandleError(logger *slog.Logger, w http.ResponseWriter, err error) {
	srvcErr := &srvcerror.Error{}
	if errors.As(err, &srvcErr) {
		if srvcErr.DebugInfo() != nil {
			logger.Warn("service error", "error", err, "debug", srvcErr.DebugInfo())
		} else {
			logger.Warn("service error", "error", err)
		}
		if srvcErr.HttpStatusCode() == http.StatusInternalServerError {
			logger.Error("internal server error", "error", err)
		}
		WriteErrorJson(w, srvcErr.Error(), srvcErr.HttpStatusCode(), srvcErr.ErrorCode())
		return
	} else {
		logger.Error("internal server error", "error", err)
		writeInternalErrorJson(w)
	}
}
