package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/worldpub/internal/client/models"
	"github.com/dmitrijs2005/worldpub/internal/common"
)

// HTTPClient talks JSON over HTTPS to the blueprint service.
type HTTPClient struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type blueprintDTO struct {
	ID              string   `json:"id"`
	Version         int      `json:"version"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Tags            []string `json:"tags"`
	Capacity        int      `json:"capacity"`
	AuthorID        string   `json:"authorId"`
	AuthorName      string   `json:"authorName"`
	AssetURL        string   `json:"assetUrl"`
	UnityPackageURL string   `json:"unityPackageUrl"`
	ImageURL        string   `json:"imageUrl"`
	ReleaseStatus   string   `json:"releaseStatus"`
	Kind            string   `json:"kind"`
}

func toDTO(b *models.Blueprint) *blueprintDTO {
	return &blueprintDTO{
		ID:              b.ID,
		Version:         b.Version,
		Name:            b.Name,
		Description:     b.Description,
		Tags:            b.Tags,
		Capacity:        b.Capacity,
		AuthorID:        b.AuthorID,
		AuthorName:      b.AuthorName,
		AssetURL:        b.AssetURL,
		UnityPackageURL: b.UnityPackageURL,
		ImageURL:        b.ImageURL,
		ReleaseStatus:   b.ReleaseStatus,
		Kind:            string(b.Kind),
	}
}

func fromDTO(d *blueprintDTO) *models.Blueprint {
	return &models.Blueprint{
		ID:              d.ID,
		Version:         d.Version,
		Name:            d.Name,
		Description:     d.Description,
		Tags:            d.Tags,
		Capacity:        d.Capacity,
		AuthorID:        d.AuthorID,
		AuthorName:      d.AuthorName,
		AssetURL:        d.AssetURL,
		UnityPackageURL: d.UnityPackageURL,
		ImageURL:        d.ImageURL,
		ReleaseStatus:   d.ReleaseStatus,
		Kind:            models.ContentKind(d.Kind),
	}
}

func (c *HTTPClient) SetAccessToken(token string) {
	c.accessToken = token
}

func (c *HTTPClient) Login(ctx context.Context, apiKey string) (string, error) {
	body, err := json.Marshal(map[string]string{"apiKey": apiKey})
	if err != nil {
		return "", err
	}

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/1/auth/login", body, &resp); err != nil {
		return "", err
	}

	c.accessToken = resp.AccessToken
	return resp.AccessToken, nil
}

// Fetch, Create and Save run the request on a separate goroutine and report
// through the callbacks, matching the service's completion idiom. Exactly
// one callback fires per call.

func (c *HTTPClient) Fetch(ctx context.Context, id string, onSuccess func(*models.Blueprint), onFailure func(error)) {
	go func() {
		var dto blueprintDTO
		if err := c.do(ctx, http.MethodGet, "/api/1/blueprints/"+id, nil, &dto); err != nil {
			onFailure(err)
			return
		}
		onSuccess(fromDTO(&dto))
	}()
}

func (c *HTTPClient) Create(ctx context.Context, b *models.Blueprint, onSuccess func(*models.Blueprint), onFailure func(error)) {
	go func() {
		body, err := json.Marshal(toDTO(b))
		if err != nil {
			onFailure(err)
			return
		}
		var dto blueprintDTO
		if err := c.do(ctx, http.MethodPost, "/api/1/blueprints", body, &dto); err != nil {
			onFailure(err)
			return
		}
		onSuccess(fromDTO(&dto))
	}()
}

func (c *HTTPClient) Save(ctx context.Context, b *models.Blueprint, onSuccess func(*models.Blueprint), onFailure func(error)) {
	go func() {
		body, err := json.Marshal(toDTO(b))
		if err != nil {
			onFailure(err)
			return
		}
		var dto blueprintDTO
		if err := c.do(ctx, http.MethodPut, "/api/1/blueprints/"+b.ID, body, &dto); err != nil {
			onFailure(err)
			return
		}
		onSuccess(fromDTO(&dto))
	}()
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return mapStatus(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapStatus translates an HTTP error response into the shared sentinel
// errors, keeping the remote error string for the error sink.
func mapStatus(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := string(bytes.TrimSpace(b))
	if msg == "" {
		msg = resp.Status
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, msg)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, msg)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", common.ErrUnavailable, msg)
	default:
		return fmt.Errorf("api error %d: %s", resp.StatusCode, msg)
	}
}
