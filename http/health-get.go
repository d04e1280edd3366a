package http

import (
	"encoding/json"
	"net/http"

	"github.com/algoprep/grader/langexec"
	"github.com/algoprep/grader/sandbox"
)

// health reports sandbox reachability and the supported language set.
// It performs no grading.
func (httpserver *HttpServer) health(w http.ResponseWriter, r *http.Request) {
	info := sandbox.HealthInfo{}
	if httpserver.sandbox != nil {
		info = httpserver.sandbox.Health(r.Context())
	}

	resp := struct {
		Sandbox            sandbox.HealthInfo `json:"sandbox"`
		SupportedLanguages []string           `json:"supported_languages"`
	}{
		Sandbox:            info,
		SupportedLanguages: langexec.Supported(),
	}

	w.Header().Set("Content-Type", "application/json")
	status := http.StatusOK
	if !info.Reachable {
		status = http.StatusServiceUnavailable
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
