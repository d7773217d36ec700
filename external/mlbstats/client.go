// Package mlbstats is a thin client for the public MLB Stats API, used for
// the lookups local season tables cannot answer: batter-vs-pitcher series
// and platoon splits.
package mlbstats

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/dugout-cli/dugout/internal/domain/matchup"
	"github.com/dugout-cli/dugout/internal/domain/platoon"
	"github.com/dugout-cli/dugout/internal/domain/statline"
	"github.com/dugout-cli/dugout/internal/platform/logging"
	"github.com/dugout-cli/dugout/internal/platform/resilience"
	"github.com/dugout-cli/dugout/internal/usecase"
)

const defaultBaseURL = "https://statsapi.mlb.com/api/v1"

var errMLBTransient = crerr.New("mlb stats api transient failure")

type ClientConfig struct {
	HTTPClient          *http.Client
	BaseURL             string
	Timeout             time.Duration
	MaxRetries          int
	Logger              *logging.Logger
	CircuitEnabled      bool
	CircuitFailureCount int
	CircuitOpenTimeout  time.Duration
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.Breaker
	circuitEnabled bool
	flight         resilience.Group[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewBreaker(cfg.CircuitFailureCount, cfg.CircuitOpenTimeout),
		circuitEnabled: cfg.CircuitEnabled,
	}
}

// LookupPlayer resolves a name to an MLB person. The API's first match wins,
// mirroring how the search endpoint ranks active players.
func (c *Client) LookupPlayer(ctx context.Context, name string) (usecase.ExternalPlayer, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return usecase.ExternalPlayer{}, false, fmt.Errorf("%w: player name is required", usecase.ErrInvalidInput)
	}

	var envelope peopleEnvelope
	if err := c.doJSON(ctx, "/people/search", map[string]string{"names": name}, &envelope); err != nil {
		return usecase.ExternalPlayer{}, false, fmt.Errorf("lookup player %q: %w", name, err)
	}
	if len(envelope.People) == 0 {
		return usecase.ExternalPlayer{}, false, nil
	}

	p := envelope.People[0]
	return usecase.ExternalPlayer{
		ID:       p.ID,
		FullName: p.FullName,
		Position: p.PrimaryPosition.Abbreviation,
	}, true, nil
}

// FetchMatchup returns a batter's line against one pitcher, one entry per
// season plus the career total.
func (c *Client) FetchMatchup(ctx context.Context, batterID, pitcherID int64) ([]matchup.Stat, error) {
	if batterID <= 0 || pitcherID <= 0 {
		return nil, fmt.Errorf("%w: batter and pitcher ids are required", usecase.ErrInvalidInput)
	}

	path := fmt.Sprintf("/people/%d/stats", batterID)
	query := map[string]string{
		"stats":            "vsPlayer",
		"opposingPlayerId": strconv.FormatInt(pitcherID, 10),
		"group":            "hitting",
	}

	var envelope statsEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch matchup batter=%d pitcher=%d: %w", batterID, pitcherID, err)
	}

	var out []matchup.Stat
	for _, group := range envelope.Stats {
		for _, split := range group.Splits {
			year := ""
			switch {
			case split.Season != "":
				year = split.Season
			case group.Type.DisplayName == "vsPlayerTotal":
				year = matchup.CareerYear
			default:
				continue
			}

			out = append(out, matchup.Stat{
				Year:    year,
				Games:   split.Stat.GamesPlayed,
				PA:      split.Stat.PlateAppearances,
				AB:      split.Stat.AtBats,
				H:       split.Stat.Hits,
				Doubles: split.Stat.Doubles,
				Triples: split.Stat.Triples,
				HR:      split.Stat.HomeRuns,
				RBI:     split.Stat.RBI,
				BB:      split.Stat.BaseOnBalls,
				SO:      split.Stat.StrikeOuts,
				HBP:     split.Stat.HitByPitch,
				IBB:     split.Stat.IntentionalWalks,
				BA:      parseAvgStat(split.Stat.Avg),
				OBP:     parseAvgStat(split.Stat.OBP),
				SLG:     parseAvgStat(split.Stat.SLG),
				OPS:     parseAvgStat(split.Stat.OPS),
			})
		}
	}

	return out, nil
}

// FetchPlatoonSplits returns left/right splits for one player. Year 0 with
// allYears false fetches career totals; allYears true fetches every season
// the API reports. Incomplete years, where only one side came back, are
// dropped.
func (c *Client) FetchPlatoonSplits(ctx context.Context, playerID int64, kind statline.Kind, year int, allYears bool) ([]platoon.YearSplits, error) {
	if playerID <= 0 {
		return nil, fmt.Errorf("%w: player id is required", usecase.ErrInvalidInput)
	}

	group := "hitting"
	sitCodes := "vl,vr"
	if kind == statline.KindPitcher {
		group = "pitching"
	}

	query := map[string]string{
		"stats":    "statSplits",
		"group":    group,
		"sitCodes": sitCodes,
	}
	career := false
	switch {
	case allYears:
	case year > 0:
		query["season"] = strconv.Itoa(year)
	default:
		query["stats"] = "careerStatSplits"
		career = true
	}

	path := fmt.Sprintf("/people/%d/stats", playerID)
	var envelope statsEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch platoon splits player=%d: %w", playerID, err)
	}

	byYear := make(map[string]*platoon.YearSplits)
	var order []string
	for _, statGroup := range envelope.Stats {
		for _, split := range statGroup.Splits {
			yearKey := split.Season
			if career || yearKey == "" {
				yearKey = platoon.CareerYear
			}

			side := sideFromCode(split.Split.Code)
			if side == "" {
				continue
			}

			ys, ok := byYear[yearKey]
			if !ok {
				ys = &platoon.YearSplits{Year: yearKey}
				byYear[yearKey] = ys
				order = append(order, yearKey)
			}

			s := platoonSplit(side, split.Stat)
			if side == platoon.SideLeft {
				ys.Left = s
			} else {
				ys.Right = s
			}
		}
	}

	out := make([]platoon.YearSplits, 0, len(order))
	for _, y := range order {
		ys := byYear[y]
		if ys.Left.Side == "" || ys.Right.Side == "" {
			continue
		}
		out = append(out, *ys)
	}

	return out, nil
}

func platoonSplit(side platoon.Side, stat splitStat) platoon.Split {
	pa := stat.PlateAppearances
	if pa == 0 && stat.BattersFaced > 0 {
		pa = stat.BattersFaced
	}
	return platoon.Split{
		Side:    side,
		PA:      pa,
		AB:      stat.AtBats,
		H:       stat.Hits,
		Doubles: stat.Doubles,
		Triples: stat.Triples,
		HR:      stat.HomeRuns,
		RBI:     stat.RBI,
		BB:      stat.BaseOnBalls,
		SO:      stat.StrikeOuts,
		BA:      parseAvgStat(stat.Avg),
		OBP:     parseAvgStat(stat.OBP),
		SLG:     parseAvgStat(stat.SLG),
		OPS:     parseAvgStat(stat.OPS),
		ERA:     parseAvgStat(stat.ERA),
		WHIP:    parseAvgStat(stat.WHIP),
		K9:      parseAvgStat(stat.StrikeoutsPer9),
		BB9:     parseAvgStat(stat.WalksPer9),
		IP:      stat.InningsPitched,
	}
}

func sideFromCode(code string) platoon.Side {
	switch code {
	case "vl":
		return platoon.SideLeft
	case "vr":
		return platoon.SideRight
	default:
		return ""
	}
}

// parseAvgStat handles the API's string-formatted rate stats: ".364",
// "1.000", or the "-.--" placeholder for an empty denominator.
func parseAvgStat(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" || value == "-.--" {
		return 0
	}
	if strings.HasPrefix(value, ".") {
		value = "0" + value
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		if !c.circuitEnabled {
			return c.executeRequest(ctx, fullURL)
		}

		var out []byte
		var reqErr error
		err := c.breaker.Do(func() error {
			out, reqErr = c.executeRequest(ctx, fullURL)
			if reqErr != nil && !crerr.Is(reqErr, errMLBTransient) {
				// Permanent failures should not trip the breaker.
				return nil
			}
			return reqErr
		})
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			return nil, fmt.Errorf("%w: stats api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		if reqErr != nil {
			return nil, reqErr
		}
		return out, nil
	})
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode stats api payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errMLBTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errMLBTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: stats api status=%d", errMLBTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("stats api status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.Warn("mlb stats api request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
