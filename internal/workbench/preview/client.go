package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/facadeworks/facade-workbench/internal/logging"
	"golang.org/x/time/rate"
)

// Options configures a Client. Zero values fall back to the defaults below.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	ReportTimeout time.Duration
	RatePerSec    float64
	Burst         int
}

const (
	defaultTimeout       = 15 * time.Second
	defaultReportTimeout = 120 * time.Second
	defaultRate          = 10
	defaultBurst         = 20
)

// Client talks to the calculation service that renders previews, holds
// the profile catalog, checks figures and produces reports.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	reportClient *http.Client
	limiter      *rate.Limiter
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.ReportTimeout <= 0 {
		opts.ReportTimeout = defaultReportTimeout
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = defaultRate
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultBurst
	}
	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		httpClient:   &http.Client{Timeout: opts.Timeout},
		reportClient: &http.Client{Timeout: opts.ReportTimeout},
		limiter:      rate.NewLimiter(rate.Limit(opts.RatePerSec), opts.Burst),
	}
}

// ProfileNames fetches the catalog profile names.
func (c *Client) ProfileNames(ctx context.Context) (*ProfileNames, error) {
	var out ProfileNames
	if err := c.getJSON(ctx, "/get_profile_names", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProfileData fetches the catalog section records.
func (c *Client) ProfileData(ctx context.Context) (*ProfileData, error) {
	var out ProfileData
	if err := c.getJSON(ctx, "/get_profile_data", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WindLocations fetches the location to basic wind speed table.
func (c *Client) WindLocations(ctx context.Context) ([]WindLocation, error) {
	var out windLocationsResponse
	if err := c.getJSON(ctx, "/get_wind_locations", &out); err != nil {
		return nil, err
	}
	return out.Locations, nil
}

// CalcPreview requests a rendered preview for one entity. A response that
// decodes is returned even when the service reports failure.
func (c *Client) CalcPreview(ctx context.Context, itemType string, payload map[string]any) (*Result, error) {
	var out Result
	if err := c.postJSON(ctx, "/calc_preview", calcRequest{ItemType: itemType, Payload: payload}, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// WindPreview requests the MWFRS and C&C wind preview.
func (c *Client) WindPreview(ctx context.Context, wind map[string]any) (*Result, error) {
	var out Result
	if err := c.postJSON(ctx, "/wind_preview", windRequest{Wind: wind}, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveManualProfile stores a computed manual or stick profile.
func (c *Client) SaveManualProfile(ctx context.Context, profileType string, profile map[string]any) error {
	var ack map[string]any
	return c.postJSON(ctx, "/save_manual_profile", saveProfileRequest{ProfileType: profileType, Profile: profile}, &ack, false)
}

// CheckFigures reports which chart images exist for the document.
func (c *Client) CheckFigures(ctx context.Context, documentText string) ([]Figure, error) {
	var out figuresResponse
	if err := c.postJSON(ctx, "/check_figures", documentRequest{DocumentText: documentText}, &out, false); err != nil {
		return nil, err
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("figure check failed: %s", msg)
	}
	return out.Figures, nil
}

// GenerateReport returns the full report document.
func (c *Client) GenerateReport(ctx context.Context, documentText string) ([]byte, string, error) {
	return c.postDocument(ctx, "/generate_report", documentText)
}

// GenerateSummaryReport returns the summary report document.
func (c *Client) GenerateSummaryReport(ctx context.Context, documentText string) ([]byte, string, error) {
	return c.postDocument(ctx, "/generate_summary_report", documentText)
}

// PreviewSummary returns the summary rendered as HTML.
func (c *Client) PreviewSummary(ctx context.Context, documentText string) (string, error) {
	body, _, err := c.postDocument(ctx, "/preview_summary", documentText)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	body, status, err := c.do(ctx, c.httpClient, req)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("calculation service returned status %d for %s: %s", status, path, truncate(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s response: %w", path, err)
	}
	return nil
}

// postJSON sends in and decodes the reply into out. With lenient set, a
// non-2xx reply whose body still decodes is not an error.
func (c *Client) postJSON(ctx context.Context, path string, in, out any, lenient bool) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, status, err := c.do(ctx, c.httpClient, req)
	if err != nil {
		return err
	}
	ok := status >= 200 && status < 300
	if !ok && !lenient {
		return fmt.Errorf("calculation service returned status %d for %s: %s", status, path, truncate(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		if !ok {
			return fmt.Errorf("calculation service returned status %d for %s: %s", status, path, truncate(body))
		}
		return fmt.Errorf("failed to unmarshal %s response: %w", path, err)
	}
	return nil
}

// postDocument posts document text and returns the raw reply with its
// content type. Error replies carry {"error": ...} when the service can
// describe the failure.
func (c *Client) postDocument(ctx context.Context, path, documentText string) ([]byte, string, error) {
	data, err := json.Marshal(documentRequest{DocumentText: documentText})
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var contentType string
	body, status, err := c.doWith(ctx, c.reportClient, req, func(r *http.Response) { contentType = r.Header.Get("Content-Type") })
	if err != nil {
		return nil, "", err
	}
	if status != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return nil, "", fmt.Errorf("%s failed: %s", strings.TrimPrefix(path, "/"), e.Error)
		}
		return nil, "", fmt.Errorf("server responded with %d", status)
	}
	return body, contentType, nil
}

func (c *Client) do(ctx context.Context, hc *http.Client, req *http.Request) ([]byte, int, error) {
	return c.doWith(ctx, hc, req, nil)
}

func (c *Client) doWith(ctx context.Context, hc *http.Client, req *http.Request, inspect func(*http.Response)) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limiter error: %w", err)
	}
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to call calculation service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}
	if inspect != nil {
		inspect(resp)
	}
	logging.FromContext(ctx).Debug("calculation service call",
		"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode, "elapsed", time.Since(start))
	return body, resp.StatusCode, nil
}

func truncate(b []byte) string {
	const limit = 256
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
