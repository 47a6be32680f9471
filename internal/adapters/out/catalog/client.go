// Package catalog reaches the menu and address services over JSON HTTP.
//
// Both services are read-only collaborators. Requests carry a static service token;
// a 404 becomes *errs.ObjectNotFoundError and every other failure
// *errs.PersistenceUnavailableError. Nothing is retried here.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

const DefaultTimeout = 3 * time.Second

type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("catalogUrl", fmt.Errorf("%q is not an absolute URL", baseURL))
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    u,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type menuItemResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	RestaurantID   string `json:"restaurantId"`
	RestaurantName string `json:"restaurantName"`
	Available      bool   `json:"available"`
}

type addressResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customerId"`
	Label      string `json:"label"`
	Line       string `json:"line"`
}

func (c *Client) GetMenuItem(ctx context.Context, itemID kernel.UUID) (ports.CatalogItem, error) {
	if err := itemID.Validate(); err != nil {
		return ports.CatalogItem{}, err
	}

	var resp menuItemResponse
	if err := c.get(ctx, "menu item", itemID.String(), &resp, "menu-items", itemID.String()); err != nil {
		return ports.CatalogItem{}, err
	}

	id, err := kernel.UUIDFromString(resp.ID)
	if err != nil {
		return ports.CatalogItem{}, c.malformed("menu item", err)
	}
	restaurantID, err := kernel.UUIDFromString(resp.RestaurantID)
	if err != nil {
		return ports.CatalogItem{}, c.malformed("menu item", err)
	}
	price, err := kernel.NewMoney(resp.Price)
	if err != nil {
		return ports.CatalogItem{}, c.malformed("menu item", err)
	}
	item, err := cart.NewMenuItem(id, resp.Name, price, restaurantID, resp.RestaurantName)
	if err != nil {
		return ports.CatalogItem{}, c.malformed("menu item", err)
	}

	return ports.CatalogItem{Item: item, Available: resp.Available}, nil
}

func (c *Client) GetAddress(ctx context.Context, customerID, addressID kernel.UUID) (ports.Address, error) {
	if err := customerID.Validate(); err != nil {
		return ports.Address{}, err
	}
	if err := addressID.Validate(); err != nil {
		return ports.Address{}, err
	}

	var resp addressResponse
	err := c.get(ctx, "address", addressID.String(), &resp,
		"customers", customerID.String(), "addresses", addressID.String())
	if err != nil {
		return ports.Address{}, err
	}

	id, err := kernel.UUIDFromString(resp.ID)
	if err != nil {
		return ports.Address{}, c.malformed("address", err)
	}
	owner, err := kernel.UUIDFromString(resp.CustomerID)
	if err != nil {
		return ports.Address{}, c.malformed("address", err)
	}
	if !owner.IsEqual(customerID) {
		return ports.Address{}, errs.NewObjectNotFoundError("address", addressID.String())
	}

	return ports.Address{ID: id, CustomerID: owner, Label: resp.Label, Line: resp.Line}, nil
}

func (c *Client) get(ctx context.Context, object, id string, out any, path ...string) error {
	endpoint := c.baseURL.JoinPath(path...)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return errs.NewPersistenceUnavailableError("build "+object+" request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewPersistenceUnavailableError("get "+object, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errs.NewObjectNotFoundError(object, id)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errs.NewPersistenceUnavailableError("get "+object,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.malformed(object, err)
	}
	return nil
}

func (c *Client) malformed(object string, err error) error {
	return errs.NewPersistenceUnavailableError("decode "+object, err)
}
