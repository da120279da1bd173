package problemsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"algorithm_guessr/internal/domain/model"
)

var ErrUpstream = errors.New("upstream problem source failed")

// VJudgeProblem is the subset of the VJudge problem data document we use.
type VJudgeProblem struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Difficulty  *int     `json:"difficulty"`
}

type Client struct {
	httpClient    *http.Client
	codeforcesURL string
	vjudgeURL     string
}

func NewClient(codeforcesURL, vjudgeURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: timeout},
		codeforcesURL: strings.TrimRight(codeforcesURL, "/"),
		vjudgeURL:     strings.TrimRight(vjudgeURL, "/"),
	}
}

type problemsetResponse struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
	Result  struct {
		Problems []model.RawProblem `json:"problems"`
	} `json:"result"`
}

// FetchProblemset downloads the full Codeforces problemset.
func (c *Client) FetchProblemset(ctx context.Context) ([]model.RawProblem, error) {
	body, err := c.get(ctx, c.codeforcesURL+"/api/problemset.problems")
	if err != nil {
		return nil, err
	}

	var resp problemsetResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode problemset: %v", ErrUpstream, err)
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("%w: codeforces returned status %q: %s", ErrUpstream, resp.Status, resp.Comment)
	}
	return resp.Result.Problems, nil
}

// FetchVJudgeProblem loads statement, tags and difficulty for a Codeforces
// problem from VJudge's mirror.
func (c *Client) FetchVJudgeProblem(ctx context.Context, p model.RawProblem) (*VJudgeProblem, error) {
	id := fmt.Sprintf("CodeForces-%d%s", p.ContestID, p.Index)
	body, err := c.get(ctx, c.vjudgeURL+"/problem/data/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var data VJudgeProblem
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: decode vjudge data: %v", ErrUpstream, err)
	}
	return &data, nil
}

// ProblemURL is the canonical Codeforces page for p.
func (c *Client) ProblemURL(p model.RawProblem) string {
	return fmt.Sprintf("%s/contest/%d/problem/%s", c.codeforcesURL, p.ContestID, url.PathEscape(p.Index))
}

// FetchStatement scrapes the statement fragment from the Codeforces problem page.
// An empty string means the page had no recognizable statement.
func (c *Client) FetchStatement(ctx context.Context, p model.RawProblem) (string, error) {
	body, err := c.get(ctx, c.ProblemURL(p))
	if err != nil {
		return "", err
	}
	return ExtractStatement(string(body)), nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json, text/html;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrUpstream, target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUpstream, target, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s returned %s", ErrUpstream, target, resp.Status)
	}
	return body, nil
}
