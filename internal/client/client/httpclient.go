package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/readtrack/internal/client/models"
	"github.com/dmitrijs2005/readtrack/internal/common"
	"github.com/dmitrijs2005/readtrack/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient talks JSON over HTTP to the reading-tracker backend.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient returns a client rooted at baseURL. A zero timeout means
// calls are bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type addBookRequest struct {
	WorkID string        `json:"workID"`
	Status models.Status `json:"status"`
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (LoginResult, error) {
	var res LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", "", credentials{Email: email, Password: string(password)}, &res)
	return res, err
}

func (c *HTTPClient) SignUp(ctx context.Context, email string, password []byte) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", "", credentials{Email: email, Password: string(password)}, nil)
}

func (c *HTTPClient) SearchTitle(ctx context.Context, query string) ([]models.BookSummary, error) {
	var res []models.BookSummary
	if err := c.do(ctx, http.MethodGet, "/search/title/"+url.PathEscape(query), "", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) LookupISBN(ctx context.Context, isbn string) (models.BookDetails, error) {
	var res models.BookDetails
	err := c.do(ctx, http.MethodGet, "/search/isbn/"+url.PathEscape(isbn), "", nil, &res)
	return res, err
}

func (c *HTTPClient) BookDetails(ctx context.Context, workID string) (models.BookDetails, error) {
	var res models.BookDetails
	err := c.do(ctx, http.MethodGet, "/works/getBookDetails/"+url.PathEscape(models.NormalizeWorkID(workID)), "", nil, &res)
	return res, err
}

func (c *HTTPClient) MyBooks(ctx context.Context, token string) ([]models.LibraryEntry, error) {
	var res []models.LibraryEntry
	if err := c.do(ctx, http.MethodGet, "/userBooks/myBooks", token, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) AddBook(ctx context.Context, token string, workID string, status models.Status) error {
	body := addBookRequest{WorkID: models.NormalizeWorkID(workID), Status: status}
	return c.do(ctx, http.MethodPost, "/userBooks/addBook", token, body, nil)
}

// do sends one request. in is JSON-encoded when non-nil; out is decoded
// from a 2xx body when non-nil. A non-empty token is sent as a bearer
// credential.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeader, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	log := c.logger.With("request_id", requestID, "method", method, "path", path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return c.mapError(ctx, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if b, rerr := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); rerr == nil && json.Unmarshal(b, &eb) == nil {
			apiErr.Message = eb.Message
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) mapError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return ctxErr
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
