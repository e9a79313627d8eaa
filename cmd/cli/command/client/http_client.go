package client

// http_client.go is the CLI's client for the yamdb HTTP API.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"yamdb/internal/microservices/http-api/dto"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	Field      string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%d: %s (%s)", e.StatusCode, e.Message, e.Field)
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

func (c *HTTPClient) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	var resp dto.SignupResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Token(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error) {
	var resp dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/token", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TitleFilter mirrors the query parameters of GET /titles.
type TitleFilter struct {
	Category string
	Genre    string
	Name     string
	Year     int
	Page     int
	PageSize int
}

func (f TitleFilter) values() url.Values {
	v := url.Values{}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Genre != "" {
		v.Set("genre", f.Genre)
	}
	if f.Name != "" {
		v.Set("name", f.Name)
	}
	if f.Year != 0 {
		v.Set("year", strconv.Itoa(f.Year))
	}
	setPage(v, f.Page, f.PageSize)
	return v
}

func setPage(v url.Values, page, pageSize int) {
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		v.Set("page_size", strconv.Itoa(pageSize))
	}
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

func (c *HTTPClient) ListTitles(ctx context.Context, filter TitleFilter) (*dto.Page[dto.TitleResponse], error) {
	var resp dto.Page[dto.TitleResponse]
	if err := c.do(ctx, http.MethodGet, withQuery("/titles", filter.values()), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetTitle(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	var resp dto.TitleResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/titles/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CreateTitle(ctx context.Context, req *dto.CreateTitleRequest) (*dto.TitleResponse, error) {
	var resp dto.TitleResponse
	if err := c.do(ctx, http.MethodPost, "/titles", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) DeleteTitle(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/titles/%d", id), nil, nil)
}

func (c *HTTPClient) ListGenres(ctx context.Context, search string, page int) (*dto.Page[dto.GenreResponse], error) {
	v := url.Values{}
	if search != "" {
		v.Set("search", search)
	}
	setPage(v, page, 0)
	var resp dto.Page[dto.GenreResponse]
	if err := c.do(ctx, http.MethodGet, withQuery("/genres", v), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListCategories(ctx context.Context, search string, page int) (*dto.Page[dto.CategoryResponse], error) {
	v := url.Values{}
	if search != "" {
		v.Set("search", search)
	}
	setPage(v, page, 0)
	var resp dto.Page[dto.CategoryResponse]
	if err := c.do(ctx, http.MethodGet, withQuery("/categories", v), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListReviews(ctx context.Context, titleID int64, page int) (*dto.Page[dto.ReviewResponse], error) {
	v := url.Values{}
	setPage(v, page, 0)
	var resp dto.Page[dto.ReviewResponse]
	if err := c.do(ctx, http.MethodGet, withQuery(fmt.Sprintf("/titles/%d/reviews", titleID), v), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CreateReview(ctx context.Context, titleID int64, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	var resp dto.ReviewResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/titles/%d/reviews", titleID), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) DeleteReview(ctx context.Context, titleID, reviewID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/titles/%d/reviews/%d", titleID, reviewID), nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var errBody dto.ErrorResponse
		if err := json.NewDecoder(response.Body).Decode(&errBody); err != nil || errBody.Error == "" {
			errBody.Error = response.Status
		}
		return &APIError{StatusCode: response.StatusCode, Message: errBody.Error, Field: errBody.Field}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(out)
}
