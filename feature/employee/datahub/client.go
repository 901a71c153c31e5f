package datahub

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"employee-sync/core/filter"
	"employee-sync/core/utils"
	"employee-sync/feature/employee/models"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// idsOnlyParam limits a response to employee ids.
const idsOnlyParam = "fields=employeeId"

// Client queries the personnel record source over HTTP.
type Client struct {
	cfg      Config
	http     *http.Client
	endpoint *url.URL
	logger   *zap.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewClient creates a client for the configured endpoint.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid record source url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid record source url %q: scheme and host are required", cfg.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	ref, err := url.Parse(strings.TrimPrefix(cfg.RequestURI, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid request uri %q: %w", cfg.RequestURI, err)
	}

	return &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout()},
		endpoint: base.ResolveReference(ref),
		logger:   logger,
		sleep:    sleepContext,
	}, nil
}

// Endpoint returns the resolved employee resource URL.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// QueryAll returns every record matching all filters.
func (c *Client) QueryAll(ctx context.Context, filters []filter.Expression) ([]models.ExternalRecord, error) {
	body, err := c.fetch(ctx, filter.Encode(filters))
	if err != nil {
		return nil, err
	}
	employees, err := envelope(body)
	if err != nil {
		return nil, err
	}

	records := make([]models.ExternalRecord, 0, len(employees))
	for _, e := range employees {
		rec := decodeRecord(e)
		if rec.EmployeeID == "" {
			c.logger.Warn("Skipping record without employee id", zap.String("raw", truncate(e.Raw, 200)))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// QueryIDs returns the ids of the records matching all filters.
func (c *Client) QueryIDs(ctx context.Context, filters []filter.Expression) ([]string, error) {
	query := filter.Encode(filters)
	if query != "" {
		query += "&"
	}
	body, err := c.fetch(ctx, query+idsOnlyParam)
	if err != nil {
		return nil, err
	}
	employees, err := envelope(body)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		if id := e.Get("employeeId").String(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// fetch performs a GET with retries on network errors, 429 and 5xx.
func (c *Client) fetch(ctx context.Context, rawQuery string) ([]byte, error) {
	target := *c.endpoint
	target.RawQuery = rawQuery
	endpoint := target.String()

	attempts := c.cfg.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr *APIError
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := c.cfg.Backoff(attempt - 1)
			c.logger.Warn("Retrying record source request",
				zap.String("endpoint", endpoint),
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
				zap.Error(lastErr))
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		c.logger.Debug("Querying record source", zap.String("endpoint", endpoint))
		body, status, err := c.do(ctx, endpoint)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			lastErr = &APIError{Endpoint: endpoint, Message: "request failed", Err: err}
		case status == http.StatusOK:
			return body, nil
		case Retryable(status):
			lastErr = &APIError{Endpoint: endpoint, StatusCode: status, Message: http.StatusText(status)}
		default:
			return nil, &APIError{
				Endpoint:   endpoint,
				StatusCode: status,
				Message:    strings.TrimSpace(truncate(string(body), 200)),
				Attempts:   attempt + 1,
			}
		}
	}

	lastErr.Attempts = attempts
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Username != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

// envelope extracts the employees array of a response. A response reporting
// zero records may omit the array.
func envelope(body []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrUnexpectedResponse)
	}
	employees := gjson.GetBytes(body, "employees")
	if !employees.Exists() || employees.Type == gjson.Null {
		if gjson.GetBytes(body, "recordCount").Int() == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: recordCount without employees", ErrUnexpectedResponse)
	}
	if !employees.IsArray() {
		return nil, fmt.Errorf("%w: employees is not an array", ErrUnexpectedResponse)
	}
	return employees.Array(), nil
}

func decodeRecord(e gjson.Result) models.ExternalRecord {
	str := func(path string) string { return e.Get(path).String() }
	return models.ExternalRecord{
		EmployeeID: str("employeeId"),
		FirstName:  str("firstName"),
		LastName:   str("lastName"),
		Name:       str("name"),
		Email:      str("email"),
		Status:     str("status"),
		JobCode:    str("jobCode"),
		JobTitle:   str("jobTitle"),
		Location:   str("location"),
		WorkPhone:  str("workPhone"),
		ManagerID:  str("managerId"),
		HireDate:   timeAt(e, "hireDate"),

		JobCodeLastUpdated:    timeAt(e, "jobCodeLastUpdated"),
		DepartmentLastUpdated: timeAt(e, "departmentLastUpdated"),
		LocationLastUpdated:   timeAt(e, "locationLastUpdated"),
		NameLastUpdated:       timeAt(e, "nameLastUpdated"),
		WorkPhoneLastUpdated:  timeAt(e, "workPhoneLastUpdated"),
		JobDataLastUpdated:    timeAt(e, "jobDataLastUpdated"),

		Department: models.DepartmentInfo{
			ID:           str("department.id"),
			Name:         str("department.name"),
			Code:         str("department.code"),
			FunctionCode: str("department.functionCode"),
			Division:     str("department.division"),
			CostCenter:   str("department.costCenter"),
		},
	}
}

// timeAt reads an instant; missing or unparseable values yield nil.
func timeAt(e gjson.Result, path string) *time.Time {
	v := e.Get(path)
	if v.Type != gjson.String {
		return nil
	}
	t, ok := utils.ToTime(v.String())
	if !ok {
		return nil
	}
	return &t
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
