package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-pim-sync/internal/config"
	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/utils"
	"github.com/MKhiriev/go-pim-sync/models"
	"github.com/go-resty/resty/v2"
)

type httpSessionAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPSessionAdapter constructs the REST implementation of
// [SessionAdapter] for the peer at cfg.HTTPAddress. An address without a
// scheme is taken as plain http.
func NewHTTPSessionAdapter(cfg config.Adapter, logger *logger.Logger) (SessionAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpSessionAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpSessionAdapter) Connect(ctx context.Context, collection string) (models.ConnectResponse, error) {
	var response models.ConnectResponse
	if err := h.post(ctx, collection, "connect", nil, &response); err != nil {
		return models.ConnectResponse{}, err
	}
	return response, nil
}

func (h *httpSessionAdapter) GetChanges(ctx context.Context, collection string) (models.ChangesResponse, error) {
	var response models.ChangesResponse
	if err := h.post(ctx, collection, "changes", nil, &response); err != nil {
		return models.ChangesResponse{}, err
	}
	if response.Length != len(response.Changes) {
		return models.ChangesResponse{}, fmt.Errorf("changes response of %s: length %d, got %d records",
			collection, response.Length, len(response.Changes))
	}
	return response, nil
}

func (h *httpSessionAdapter) Commit(ctx context.Context, collection string, change models.ChangeRecord) (models.ChangeRecord, error) {
	var response models.CommitResponse
	if err := h.post(ctx, collection, "commit", change, &response); err != nil {
		return models.ChangeRecord{}, err
	}
	return response.Change, nil
}

func (h *httpSessionAdapter) SyncDone(ctx context.Context, collection string) error {
	return h.post(ctx, collection, "done", nil, nil)
}

func (h *httpSessionAdapter) Disconnect(ctx context.Context, collection string) error {
	return h.post(ctx, collection, "disconnect", nil, nil)
}

func (h *httpSessionAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

// post calls one session step of collection. A nil out ignores the
// response body.
func (h *httpSessionAdapter) post(ctx context.Context, collection, step string, body, out any) error {
	req := h.request(ctx).SetPathParam("collection", collection)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Post("/api/collections/{collection}/" + step)
	if err != nil {
		h.logger.Err(err).
			Str("func", "httpSessionAdapter.post").
			Str("collection", collection).
			Str("step", step).
			Msg("request failed")
		return fmt.Errorf("%s request: %w", step, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err = json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s response: %w", step, err)
	}
	return nil
}

// request forwards the caller's trace id so both sides log under it.
func (h *httpSessionAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader("X-Trace-ID", traceID)
	}
	return req
}
