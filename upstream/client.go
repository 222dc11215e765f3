// Package upstream is the typed client for the shop REST API that owns
// products, stock, users and orders. This service never talks to a
// database of its own; everything authoritative lives behind this client.
package upstream

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

	"github.com/Pravinale/pantonefrontend/models"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Stock returns the available stock for one (product, color, size) variant.
// Any transport, status or parse failure is an error; callers treat that as
// stock unknown and block the action.
func (c *Client) Stock(ctx context.Context, productID, color, size string) (int, error) {
	path := fmt.Sprintf("/api/products/%s/stock/%s/%s",
		url.PathEscape(productID), url.PathEscape(color), url.PathEscape(size))
	var out struct {
		Stock int `json:"stock"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &out); err != nil {
		return 0, err
	}
	if out.Stock < 0 {
		return 0, fmt.Errorf("negative stock %d for %s/%s/%s", out.Stock, productID, color, size)
	}
	return out.Stock, nil
}

// CreateOrder submits the order snapshot and returns the server's record,
// which carries the assigned _id used for cancellation and payment init.
func (c *Client) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	var out struct {
		Order models.Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/orders", order, http.StatusCreated, &out); err != nil {
		return models.Order{}, err
	}
	return out.Order, nil
}

// UpdateStock asks the shop to decrement stock for the given lines after a
// cash order. Best effort from the flow's perspective.
func (c *Client) UpdateStock(ctx context.Context, products []models.StockAdjustment) error {
	body := map[string]interface{}{"products": products}
	return c.do(ctx, http.MethodPost, "/api/products/update-stock", body, http.StatusOK, nil)
}

// InitializeEsewa fetches the signed payment parameters for a placed order.
func (c *Client) InitializeEsewa(ctx context.Context, orderID string, totalPrice float64) (models.EsewaInit, error) {
	body := map[string]interface{}{"orderId": orderID, "totalPrice": totalPrice}
	var out models.EsewaInit
	if err := c.do(ctx, http.MethodPost, "/api/initialize-esewa", body, http.StatusOK, &out); err != nil {
		return models.EsewaInit{}, err
	}
	if !out.Success {
		return models.EsewaInit{}, fmt.Errorf("payment init rejected for order %s", orderID)
	}
	return out, nil
}

// CancelOrder deletes an order that has not been fulfilled yet.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	path := "/api/orders/" + url.PathEscape(orderID)
	return c.do(ctx, http.MethodDelete, path, nil, http.StatusOK, nil)
}

// Profile fetches the buyer's contact details by user id.
func (c *Client) Profile(ctx context.Context, userID string) (models.UserProfile, error) {
	var out models.UserProfile
	err := c.do(ctx, http.MethodGet, "/api/users/me/"+url.PathEscape(userID), nil, http.StatusOK, &out)
	return out, err
}

// Login forwards credentials to the shop API and returns the signed-in
// user. The shop owns credential checking; nothing is verified here.
func (c *Client) Login(ctx context.Context, username, password string) (models.LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var out models.LoginResult
	err := c.do(ctx, http.MethodPost, "/api/users/login", body, http.StatusOK, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, wantStatus int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach shop API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("shop API error (%d) on %s %s: %s", resp.StatusCode, method, path, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse shop API response for %s: %w", path, err)
	}
	return nil
}
