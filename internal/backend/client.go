// Package backend is the HTTP client for the tournament stats REST service.
// It forwards the caller's browser cookies so the upstream session and admin
// checks apply to the original user, not to this service.
package backend

import (
	"bytes"
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
	"github.com/rahmatrdn/uclboard/internal/domain/player"
	"github.com/rahmatrdn/uclboard/internal/domain/user"
	"github.com/rahmatrdn/uclboard/internal/platform/logging"
	"github.com/rahmatrdn/uclboard/internal/platform/resilience"
	"github.com/rahmatrdn/uclboard/internal/usecase"
)

const defaultTimeout = 8 * time.Second

var errBackendTransient = crerr.New("stats backend transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	breakerCfg := resilience.NormalizeBreakerConfig(cfg.CircuitBreaker)

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) ListPlayers(ctx context.Context, session string) ([]player.Player, error) {
	var out []player.Player
	if err := c.getJSON(ctx, session, "/players", nil, &out); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return out, nil
}

func (c *Client) ListNationalities(ctx context.Context, session string) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, session, "/players/nationalities", nil, &out); err != nil {
		return nil, fmt.Errorf("list nationalities: %w", err)
	}
	return out, nil
}

func (c *Client) ListTeams(ctx context.Context, session string) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, session, "/players/teams", nil, &out); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return out, nil
}

func (c *Client) ListPositions(ctx context.Context, session string) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, session, "/players/positions", nil, &out); err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	return out, nil
}

func (c *Client) PlayersByNationality(ctx context.Context, session, nationality string) ([]player.Player, error) {
	if strings.TrimSpace(nationality) == "" {
		return nil, fmt.Errorf("%w: nationality cannot be empty", usecase.ErrInvalidInput)
	}
	var out []player.Player
	path := "/players/nationalities/" + url.PathEscape(nationality)
	if err := c.getJSON(ctx, session, path, nil, &out); err != nil {
		return nil, fmt.Errorf("players by nationality %q: %w", nationality, err)
	}
	return out, nil
}

func (c *Client) PlayersByTeam(ctx context.Context, session, team string) ([]player.Player, error) {
	if strings.TrimSpace(team) == "" {
		return nil, fmt.Errorf("%w: team cannot be empty", usecase.ErrInvalidInput)
	}
	var out []player.Player
	path := "/players/teams/" + url.PathEscape(team)
	if err := c.getJSON(ctx, session, path, nil, &out); err != nil {
		return nil, fmt.Errorf("players by team %q: %w", team, err)
	}
	return out, nil
}

func (c *Client) PlayersByPosition(ctx context.Context, session, position string) ([]player.Player, error) {
	if strings.TrimSpace(position) == "" {
		return nil, fmt.Errorf("%w: position cannot be empty", usecase.ErrInvalidInput)
	}
	var out []player.Player
	path := "/players/positions/" + url.PathEscape(position)
	if err := c.getJSON(ctx, session, path, nil, &out); err != nil {
		return nil, fmt.Errorf("players by position %q: %w", position, err)
	}
	return out, nil
}

func (c *Client) FilterPlayers(ctx context.Context, session string, filter player.Filter) ([]player.Player, error) {
	var out []player.Player
	if err := c.getJSON(ctx, session, "/players/filter", filter.Query(), &out); err != nil {
		return nil, fmt.Errorf("filter players: %w", err)
	}
	return out, nil
}

func (c *Client) CreatePlayer(ctx context.Context, session string, req player.Request) (player.Player, error) {
	var out player.Player
	if err := c.writeJSON(ctx, session, http.MethodPost, "/players", req, &out); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	return out, nil
}

func (c *Client) UpdatePlayer(ctx context.Context, session string, id int64, req player.Request) (player.Player, error) {
	if id <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id must be greater than zero", usecase.ErrInvalidInput)
	}
	var out player.Player
	path := "/players/" + strconv.FormatInt(id, 10)
	if err := c.writeJSON(ctx, session, http.MethodPut, path, req, &out); err != nil {
		return player.Player{}, fmt.Errorf("update player id=%d: %w", id, err)
	}
	return out, nil
}

func (c *Client) PatchPlayer(ctx context.Context, session string, id int64, patch player.PatchRequest) (player.Player, error) {
	if id <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id must be greater than zero", usecase.ErrInvalidInput)
	}
	var out player.Player
	path := "/players/" + strconv.FormatInt(id, 10)
	if err := c.writeJSON(ctx, session, http.MethodPatch, path, patch, &out); err != nil {
		return player.Player{}, fmt.Errorf("patch player id=%d: %w", id, err)
	}
	return out, nil
}

func (c *Client) DeletePlayer(ctx context.Context, session string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: player id must be greater than zero", usecase.ErrInvalidInput)
	}
	path := "/players/" + strconv.FormatInt(id, 10)
	if err := c.writeJSON(ctx, session, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete player id=%d: %w", id, err)
	}
	return nil
}

func (c *Client) CurrentUser(ctx context.Context, session string) (user.Principal, error) {
	var out user.Principal
	if err := c.getJSON(ctx, session, "/user/me", nil, &out); err != nil {
		return user.Principal{}, fmt.Errorf("current user: %w", err)
	}
	return out, nil
}

func (c *Client) Logout(ctx context.Context, session string) error {
	if err := c.writeJSON(ctx, session, http.MethodPost, "/logout", nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// getJSON runs a read through the circuit breaker and collapses identical
// in-flight reads per session. Sessions never share a flight key because the
// upstream response depends on who is asking.
func (c *Client) getJSON(ctx context.Context, session, path string, query url.Values, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "stats backend circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stats backend is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	if query != nil {
		if encoded := query.Encode(); encoded != "" {
			fullURL += "?" + encoded
		}
	}

	key := session + "|" + fullURL
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeGet(ctx, session, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errBackendTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode backend payload: %w", err)
	}

	return nil
}

func (c *Client) executeGet(ctx context.Context, session, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if session != "" {
			req.Header.Set("Cookie", session)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errBackendTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errBackendTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				statusErr := mapStatusError(resp.StatusCode, raw)
				if !isRetryableStatus(resp.StatusCode) {
					return nil, statusErr
				}
				lastErr = fmt.Errorf("%w: %v", errBackendTransient, statusErr)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("backend request failed")
	}
	c.logger.WarnContext(ctx, "stats backend request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// writeJSON sends a mutation once, with no retry: mutations are not
// idempotent from this side.
func (c *Client) writeJSON(ctx context.Context, session, method, path string, body any, target any) error {
	fullURL := c.baseURL + path

	var reader io.Reader
	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set("Cookie", session)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "stats backend mutation failed", "method", method, "url", fullURL, "error", err)
		return fmt.Errorf("%w: send request: %v", usecase.ErrDependencyUnavailable, err)
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
	_ = resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("%w: read response body: %v", usecase.ErrDependencyUnavailable, readErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return mapStatusError(resp.StatusCode, raw)
	}

	if target == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode backend payload: %w", err)
	}
	return nil
}

// errorBody is the upstream error shape: {"error": "...", "message": "..."}.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func mapStatusError(status int, raw []byte) error {
	var body errorBody
	_ = sonic.Unmarshal(raw, &body)
	message := strings.TrimSpace(body.Message)
	if message == "" {
		message = strings.TrimSpace(body.Error)
	}

	switch {
	case status == http.StatusUnauthorized:
		if message == "" {
			message = "not signed in"
		}
		return fmt.Errorf("%w: %s", usecase.ErrUnauthorized, message)
	case status == http.StatusForbidden:
		if message == "" {
			message = "admin access required"
		}
		return fmt.Errorf("%w: %s", usecase.ErrForbidden, message)
	case status == http.StatusNotFound:
		if message == "" {
			message = "resource not found"
		}
		return fmt.Errorf("%w: %s", usecase.ErrNotFound, message)
	case status >= 400 && status < 500:
		if message == "" {
			message = fmt.Sprintf("backend rejected request with status %d", status)
		}
		return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, message)
	default:
		if message == "" {
			message = fmt.Sprintf("backend status %d", status)
		}
		return fmt.Errorf("%w: %s", usecase.ErrDependencyUnavailable, message)
	}
}

func isRetryableStatus(status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return status >= 500
}
