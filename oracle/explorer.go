// Package oracle supplies empirical move-frequency statistics for chess
// positions, backed by the Lichess opening explorer.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/exp/slices"
)

// ErrUnavailable marks oracle failures: transport errors, non-200 responses
// and malformed payloads. The search does not retry; callers may.
var ErrUnavailable = errors.New("opening explorer unavailable")

// Candidate is one continuation from a position, with its share of observed
// games from that position. Shares are non-negative and sum to at most 1.
type Candidate struct {
	UCI         string
	SAN         string
	Probability float64
}

// Oracle answers "which moves are played here, how often" for a position
// addressed by its FEN.
type Oracle interface {
	Candidates(ctx context.Context, fen string) ([]Candidate, error)
}

// explorerResponse mirrors the explorer API payload: aggregate outcome
// counts for the position, and per candidate move the same counts restricted
// to games that played it.
type explorerResponse struct {
	White int            `json:"white"`
	Draws int            `json:"draws"`
	Black int            `json:"black"`
	Moves []explorerMove `json:"moves"`
}

type explorerMove struct {
	UCI   string `json:"uci"`
	SAN   string `json:"san"`
	White int    `json:"white"`
	Draws int    `json:"draws"`
	Black int    `json:"black"`
}

// ExplorerClient queries the Lichess opening explorer masters database.
// Every request first waits on the shared Pacer.
type ExplorerClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
	pacer     *Pacer
}

func NewExplorerClient(baseURL, userAgent string, timeout time.Duration, pacer *Pacer) *ExplorerClient {
	return &ExplorerClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
		pacer:     pacer,
	}
}

// Candidates fetches the candidate moves for the position with the given FEN
// and derives each move's relative probability as its game count divided by
// the position's total game count. A position with zero recorded games
// yields no candidates and no error. Candidates are ordered by probability,
// highest first, stable within ties.
func (c *ExplorerClient) Candidates(ctx context.Context, fen string) ([]Candidate, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/masters?fen=%s", c.baseURL, url.QueryEscape(fen))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d for %q", ErrUnavailable, resp.StatusCode, fen)
	}

	var body explorerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	total := body.White + body.Draws + body.Black
	if total == 0 {
		// No recorded games here; the branch simply ends.
		return nil, nil
	}

	candidates := make([]Candidate, 0, len(body.Moves))
	for _, mv := range body.Moves {
		games := mv.White + mv.Draws + mv.Black
		candidates = append(candidates, Candidate{
			UCI:         mv.UCI,
			SAN:         mv.SAN,
			Probability: float64(games) / float64(total),
		})
	}
	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		switch {
		case a.Probability > b.Probability:
			return -1
		case a.Probability < b.Probability:
			return 1
		}
		return 0
	})
	return candidates, nil
}
