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
	"strconv"
	"strings"
	"time"

	"github.com/xavierca1/creator-deals/internal/entity"
	"github.com/xavierca1/creator-deals/internal/usecase"
)

// APIError é o corpo de erro da API.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// Client fala com a API REST. Não faz retry.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Code == "" {
			apiErr.Code = http.StatusText(resp.StatusCode)
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) StartOutreach(ctx context.Context, in usecase.StartOutreachInput) (*entity.Outreach, error) {
	var o entity.Outreach
	if err := c.do(ctx, http.MethodPost, "/outreaches", in, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) ListOutreaches(ctx context.Context, creatorID string, includeArchived bool) ([]*entity.Outreach, error) {
	q := url.Values{"creator_id": {creatorID}}
	if includeArchived {
		q.Set("include_archived", "true")
	}
	var list []*entity.Outreach
	if err := c.do(ctx, http.MethodGet, "/outreaches?"+q.Encode(), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetOutreach(ctx context.Context, id string) (*entity.Outreach, error) {
	var o entity.Outreach
	if err := c.do(ctx, http.MethodGet, "/outreaches/"+url.PathEscape(id), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Act executa uma ação de status (mark-replied, archive, ...).
func (c *Client) Act(ctx context.Context, id, action string) (*entity.Outreach, error) {
	var o entity.Outreach
	path := "/outreaches/" + url.PathEscape(id) + "/actions/" + url.PathEscape(action)
	if err := c.do(ctx, http.MethodPost, path, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) SendEmail(ctx context.Context, id string, number int) (*usecase.SendEmailOutput, error) {
	var out usecase.SendEmailOutput
	path := "/outreaches/" + url.PathEscape(id) + "/emails/" + strconv.Itoa(number) + "/send"
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetAutoSend(ctx context.Context, id string, enabled bool) (*entity.Outreach, error) {
	var o entity.Outreach
	body := map[string]bool{"enabled": enabled}
	if err := c.do(ctx, http.MethodPut, "/outreaches/"+url.PathEscape(id)+"/auto-send", body, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) GenerateProposal(ctx context.Context, id string) (*entity.Outreach, error) {
	var o entity.Outreach
	if err := c.do(ctx, http.MethodPost, "/outreaches/"+url.PathEscape(id)+"/generate/proposal", nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) DeleteOutreach(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/outreaches/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListBrands(ctx context.Context, creatorID string) ([]*entity.Brand, error) {
	var list []*entity.Brand
	q := url.Values{"creator_id": {creatorID}}
	if err := c.do(ctx, http.MethodGet, "/brands?"+q.Encode(), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) MoveBrand(ctx context.Context, id string, stage entity.PipelineStage, position int) (*entity.Brand, error) {
	var b entity.Brand
	body := map[string]any{"stage": stage, "position": position}
	if err := c.do(ctx, http.MethodPatch, "/brands/"+url.PathEscape(id)+"/stage", body, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
