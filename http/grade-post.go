package http

import (
	"encoding/json"
	"net/http"

	"github.com/algoprep/grader/gradesrvc"
	"github.com/algoprep/grader/httpjson"
	"github.com/algoprep/grader/srvcerror"
)

func (httpserver *HttpServer) grade(w http.ResponseWriter, r *http.Request) {
	var req gradesrvc.GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.HandleError(httpserver.logger, w,
			srvcerror.New("bad_request", "invalid request body").
				SetHttpStatusCode(http.StatusBadRequest).SetDebug(err))
		return
	}

	results, warnings, err := httpserver.gradeSrvc.Grade(r.Context(), req)
	if err != nil {
		httpjson.HandleError(httpserver.logger, w, err)
		return
	}

	payload := make([]any, len(results))
	for i, res := range results {
		payload[i] = res
	}
	httpjson.WriteResultsJson(w, payload, warnings)
}
