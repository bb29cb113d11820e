package freecurrency

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"currconv/internal/domain"
)

// Client talks to a freecurrencyapi-compatible provider. Every request
// carries the credential header; non-2xx responses surface the provider's own
// message field next to the raw status code, leaving classification to the
// caller.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// NewHTTPClient builds the base HTTP client for provider calls: bounded
// timeout, at most one followed redirect.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) > 1 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

type currenciesResponse struct {
	Data map[string]domain.CurrencySummary `json:"data"`
}

type latestResponse struct {
	Data map[string]float64 `json:"data"`
}

type historicalResponse struct {
	Data historicalData `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *Client) FetchCurrencies(ctx context.Context) (map[string]domain.CurrencySummary, error) {
	var payload currenciesResponse
	if err := c.get(ctx, "currencies", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (c *Client) FetchLatest(ctx context.Context, base string, currencies []string) (domain.RateSnapshot, error) {
	q := url.Values{}
	q.Set("base_currency", base)
	q.Set("currencies", strings.Join(currencies, ","))

	var payload latestResponse
	if err := c.get(ctx, "latest", q, &payload); err != nil {
		return domain.RateSnapshot{}, err
	}
	return domain.RateSnapshot{Kind: domain.SnapshotLatest, Latest: payload.Data}, nil
}

func (c *Client) FetchHistorical(ctx context.Context, base string, currencies []string, date string) (domain.RateSnapshot, error) {
	q := url.Values{}
	q.Set("base_currency", base)
	q.Set("currencies", strings.Join(currencies, ","))
	q.Set("date", date)

	var payload historicalResponse
	if err := c.get(ctx, "historical", q, &payload); err != nil {
		return domain.RateSnapshot{}, err
	}
	return domain.RateSnapshot{
		Kind:       domain.SnapshotHistorical,
		Dates:      payload.Data.dates,
		Historical: payload.Data.rates,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u, err := url.Parse(c.baseURL + "/" + path)
	if err != nil {
		return fmt.Errorf("failed to parse provider URL for %q: %w", path, err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %q: %w", path, err)
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request for %q: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.ProviderStatusError{
			StatusCode:      resp.StatusCode,
			ProviderMessage: extractMessage(resp.Body),
		}
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response for %q: %w", path, err)
	}
	return nil
}

// extractMessage pulls the provider's human-readable message out of an error
// body, if there is one.
func extractMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var e errorResponse
	if err = json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Message
}

// historicalData decodes the historical payload while keeping the provider's
// own date-key order, which the resolver's last fallback tier relies on.
type historicalData struct {
	dates []string
	rates map[string]map[string]float64
}

func (d *historicalData) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("historical data is not a JSON object")
	}

	d.rates = make(map[string]map[string]float64)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		date, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected historical data key %v", keyTok)
		}

		var raw json.RawMessage
		if err = dec.Decode(&raw); err != nil {
			return err
		}

		d.dates = append(d.dates, date)

		// Entries that are not code-to-number objects stay out of rates;
		// the resolver treats such a date as having no usable rate.
		var rates map[string]float64
		if err = json.Unmarshal(raw, &rates); err == nil {
			d.rates[date] = rates
		}
	}

	_, err = dec.Token()
	return err
}
