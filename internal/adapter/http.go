package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-order-desk/internal/config"
	"github.com/MKhiriev/go-order-desk/internal/logger"
	"github.com/MKhiriev/go-order-desk/internal/utils"
	"github.com/MKhiriev/go-order-desk/models"
	"github.com/go-resty/resty/v2"
)

// TraceIDHeader carries the request trace id to the gateway.
const TraceIDHeader = "X-Trace-ID"

type httpGatewayAdapter struct {
	client *utils.HTTPClient
	paths  config.ClientPaths
	ids    *utils.TraceIDGenerator

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPGatewayAdapter constructs the HTTP implementation of
// [GatewayAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the HTTP client with the request
// timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPGatewayAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (GatewayAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpGatewayAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		paths:  withDefaultPaths(adapterCfg.Paths),
		ids:    utils.NewTraceIDGenerator(),
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

func withDefaultPaths(p config.ClientPaths) config.ClientPaths {
	if p.Login == "" {
		p.Login = config.DefaultLoginPath
	}
	if p.Register == "" {
		p.Register = config.DefaultRegisterPath
	}
	if p.Orders == "" {
		p.Orders = config.DefaultOrdersPath
	}
	p.Orders = strings.TrimRight(p.Orders, "/")
	return p
}

// SetToken implements [GatewayAdapter].
func (h *httpGatewayAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [GatewayAdapter].
func (h *httpGatewayAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [GatewayAdapter]. POST {login path}.
func (h *httpGatewayAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := h.send(ctx, http.MethodPost, h.paths.Login, req, &auth, false)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}

	if auth.AccessToken == "" {
		token, parseErr := utils.ParseBearerToken(resp.Header().Get("Authorization"))
		if parseErr != nil {
			return models.AuthResponse{}, fmt.Errorf("login request: %w", ErrMissingToken)
		}
		auth.AccessToken = token
	}

	return auth, nil
}

// Register implements [GatewayAdapter]. POST {register path}.
func (h *httpGatewayAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := h.send(ctx, http.MethodPost, h.paths.Register, req, &auth, false)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("register request: %w", err)
	}

	if auth.AccessToken == "" {
		if token, parseErr := utils.ParseBearerToken(resp.Header().Get("Authorization")); parseErr == nil {
			auth.AccessToken = token
		}
	}

	return auth, nil
}

// GetUserOrders implements [GatewayAdapter]. GET {orders}/user/{userID}.
func (h *httpGatewayAdapter) GetUserOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order

	if _, err := h.send(ctx, http.MethodGet, h.paths.Orders+"/user/"+strconv.FormatInt(userID, 10), nil, &orders, true); err != nil {
		return nil, fmt.Errorf("get user orders request: %w", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// GetOrder implements [GatewayAdapter]. GET {orders}/{orderID}.
func (h *httpGatewayAdapter) GetOrder(ctx context.Context, orderID int64) (models.Order, error) {
	var order models.Order

	if _, err := h.send(ctx, http.MethodGet, h.paths.Orders+"/"+strconv.FormatInt(orderID, 10), nil, &order, true); err != nil {
		return models.Order{}, fmt.Errorf("get order request: %w", err)
	}
	return order, nil
}

// CreateOrder implements [GatewayAdapter]. POST {orders}/create.
func (h *httpGatewayAdapter) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.Order, error) {
	var order models.Order

	if _, err := h.send(ctx, http.MethodPost, h.paths.Orders+"/create", req, &order, true); err != nil {
		return models.Order{}, fmt.Errorf("create order request: %w", err)
	}
	return order, nil
}

// UpdateOrder implements [GatewayAdapter]. PUT {orders}/update.
func (h *httpGatewayAdapter) UpdateOrder(ctx context.Context, req models.UpdateOrderRequest) (models.Order, error) {
	var order models.Order

	if _, err := h.send(ctx, http.MethodPut, h.paths.Orders+"/update", req, &order, true); err != nil {
		return models.Order{}, fmt.Errorf("update order request: %w", err)
	}
	return order, nil
}

// DeleteOrder implements [GatewayAdapter]. DELETE {orders}/delete/{orderID}.
func (h *httpGatewayAdapter) DeleteOrder(ctx context.Context, orderID int64) error {
	if _, err := h.send(ctx, http.MethodDelete, h.paths.Orders+"/delete/"+strconv.FormatInt(orderID, 10), nil, nil, true); err != nil {
		return fmt.Errorf("delete order request: %w", err)
	}
	return nil
}

// send executes one gateway call. An empty body on success leaves result
// untouched.
func (h *httpGatewayAdapter) send(ctx context.Context, method, path string, body, result any, authed bool) (*resty.Response, error) {
	traceID, ok := utils.GetTraceIDFromContext(ctx)
	if !ok {
		traceID = h.ids.Generate()
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader(TraceIDHeader, traceID)

	if authed {
		token := h.Token()
		if token == "" {
			return nil, ErrNoToken
		}
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.SetBody(body)
	}

	logCtx := h.logger.With().
		Str("method", method).
		Str("path", path).
		Str("trace_id", traceID)
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		logCtx = logCtx.Int64("user_id", userID)
	}
	log := logCtx.Logger()

	resp, err := req.Execute(method, path)
	if err != nil {
		log.Err(err).Str("func", "httpGatewayAdapter.send").Msg("gateway request failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	log.Debug().Int("status", resp.StatusCode()).Dur("elapsed", resp.Time()).Msg("gateway response")

	if err = mapHTTPError(resp); err != nil {
		return resp, err
	}

	if result != nil && len(strings.TrimSpace(string(resp.Body()))) > 0 {
		if err = json.Unmarshal(resp.Body(), result); err != nil {
			return resp, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
		}
	}

	return resp, nil
}

// IsNetworkError reports whether err means the gateway could not be reached.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrBadGateway)
}
