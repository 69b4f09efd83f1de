package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

// ClientFailureError is an unexpected answer from a downstream service.
// It is not a domain error: the enclosing use case treats it as a crash
// and rolls back.
type ClientFailureError struct {
	Service    string
	StatusCode int
}

func (e *ClientFailureError) Error() string {
	return fmt.Sprintf("%s service answered status %d", e.Service, e.StatusCode)
}

// UsersClient resolves users against the users service.
type UsersClient struct {
	base string
	http *http.Client
}

func NewUsersClient(base string, timeout time.Duration) *UsersClient {
	return &UsersClient{base: base, http: &http.Client{Timeout: timeout}}
}

type userDTO struct {
	ID uuid.UUID `json:"id"`
}

func (c *UsersClient) FindUser(ctx context.Context, id uuid.UUID) (auction.User, error) {
	var dto userDTO
	err := getJSON(ctx, c.http, fmt.Sprintf("%s/users/%s", c.base, id), "users", auction.ErrUserNotFound, &dto)
	if err != nil {
		return auction.User{}, err
	}
	return auction.User{ID: dto.ID}, nil
}

// ItemsClient resolves items against the catalog service.
type ItemsClient struct {
	base string
	http *http.Client
}

func NewItemsClient(base string, timeout time.Duration) *ItemsClient {
	return &ItemsClient{base: base, http: &http.Client{Timeout: timeout}}
}

type itemDTO struct {
	ID       uuid.UUID `json:"id"`
	Status   string    `json:"status"`
	SellerID uuid.UUID `json:"seller_id"`
}

func (c *ItemsClient) FindItem(ctx context.Context, id uuid.UUID) (auction.Item, error) {
	var dto itemDTO
	err := getJSON(ctx, c.http, fmt.Sprintf("%s/catalog/items/%s", c.base, id), "catalog", auction.ErrItemNotFound, &dto)
	if err != nil {
		return auction.Item{}, err
	}
	return auction.Item{
		ID:       dto.ID,
		Status:   auction.ItemStatus(dto.Status),
		SellerID: dto.SellerID,
	}, nil
}

// getJSON performs a GET and decodes a 2xx body. A 404 becomes the given
// not-found domain error; any other non-2xx status is a client failure.
func getJSON(ctx context.Context, client *http.Client, url, service string, notFound *auction.Error, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", service, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s service: %w", service, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return notFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &ClientFailureError{Service: service, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", service, err)
	}
	return nil
}
