package sandbox

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to a Judge0-style sandbox backend over HTTP. It is
// stateless and safe for concurrent use by multiple in-flight grading
// requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
	logger     *slog.Logger
}

func NewClient(baseURL string, authToken string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		authToken:  authToken,
		logger:     slog.Default().With("module", "sandbox"),
	}
}

// SubmitBatch submits all jobs as one batch and returns one opaque
// token per job, in submission order.
func (c *Client) SubmitBatch(ctx context.Context, jobs []Job) ([]string, error) {
	payload := struct {
		Submissions []jobPayload `json:"submissions"`
	}{Submissions: make([]jobPayload, len(jobs))}

	for i, job := range jobs {
		payload.Submissions[i] = jobPayload{
			LanguageID: job.LanguageID,
			SourceCode: base64.StdEncoding.EncodeToString([]byte(job.SourceCode)),
			Stdin:      base64.StdEncoding.EncodeToString([]byte(job.Stdin)),
		}
		if job.ExpectedOutput != nil {
			enc := base64.StdEncoding.EncodeToString([]byte(*job.ExpectedOutput))
			payload.Submissions[i].ExpectedOutput = &enc
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch submission: %w", err)
	}

	var tokens []struct {
		Token string `json:"token"`
	}
	err = c.doJson(ctx, http.MethodPost,
		"/submissions/batch?base64_encoded=true", body, &tokens)
	if err != nil {
		return nil, fmt.Errorf("batch submit failed: %w", err)
	}
	if len(tokens) != len(jobs) {
		return nil, fmt.Errorf("sandbox returned %d tokens for %d jobs", len(tokens), len(jobs))
	}

	out := make([]string, len(tokens))
	for i, t := range tokens {
		if t.Token == "" {
			return nil, fmt.Errorf("sandbox returned an empty token for job %d", i)
		}
		out[i] = t.Token
	}
	return out, nil
}

const resultFields = "token,status,stdout,stderr,compile_output,message,time,memory"

// FetchBatch fetches results for the given tokens. The returned slice
// is ordered by the token list, which the caller built in job
// submission order; ordering is therefore preserved end-to-end.
func (c *Client) FetchBatch(ctx context.Context, tokens []string) ([]JobResult, error) {
	q := url.Values{}
	q.Set("tokens", strings.Join(tokens, ","))
	q.Set("base64_encoded", "true")
	q.Set("fields", resultFields)

	var payload struct {
		Submissions []jobResultPayload `json:"submissions"`
	}
	err := c.doJson(ctx, http.MethodGet, "/submissions/batch?"+q.Encode(), nil, &payload)
	if err != nil {
		return nil, fmt.Errorf("batch result fetch failed: %w", err)
	}
	if len(payload.Submissions) != len(tokens) {
		return nil, fmt.Errorf("sandbox returned %d results for %d tokens",
			len(payload.Submissions), len(tokens))
	}

	results := make([]JobResult, len(payload.Submissions))
	for i, sub := range payload.Submissions {
		r := JobResult{
			Token:             sub.Token,
			StatusID:          sub.Status.ID,
			StatusDescription: sub.Status.Description,
			Stdout:            decodeB64(sub.Stdout),
			Stderr:            decodeB64(sub.Stderr),
			CompileOutput:     decodeB64(sub.CompileOutput),
			Message:           decodeB64(sub.Message),
		}
		if r.Token == "" {
			r.Token = tokens[i]
		}
		if sub.Time != nil {
			if t, err := strconv.ParseFloat(*sub.Time, 64); err == nil {
				r.TimeSec = t
			}
		}
		if sub.Memory != nil {
			r.MemoryKb = *sub.Memory
		}
		results[i] = r
	}
	return results, nil
}

// Health reports backend reachability and its language catalog. It
// performs no grading.
func (c *Client) Health(ctx context.Context) HealthInfo {
	langs, err := c.Languages(ctx)
	if err != nil {
		c.logger.Warn("sandbox health check failed", "error", err)
		return HealthInfo{Reachable: false, Error: err.Error()}
	}
	return HealthInfo{Reachable: true, Languages: langs}
}

func (c *Client) Languages(ctx context.Context) ([]LanguageInfo, error) {
	var langs []LanguageInfo
	if err := c.doJson(ctx, http.MethodGet, "/languages", nil, &langs); err != nil {
		return nil, fmt.Errorf("failed to list sandbox languages: %w", err)
	}
	return langs, nil
}

func (c *Client) doJson(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("X-Auth-Token", c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sandbox request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read sandbox response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sandbox returned status %d: %s",
			resp.StatusCode, truncate(string(respBody), 300))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode sandbox response: %w", err)
	}
	return nil
}

func decodeB64(s *string) string {
	if s == nil {
		return ""
	}
	// judge0 emits newline-wrapped base64
	cleaned := strings.ReplaceAll(*s, "\n", "")
	decoded, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return *s
	}
	return string(decoded)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
