package client

import (
	"fmt"
	"net/url"

	"parq/pkg/model"
)

// AdminClient covers the inventory/audit API.
type AdminClient struct {
	httpClient *HttpClient
}

func NewAdminClient(baseURL string) *AdminClient {
	return &AdminClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *AdminClient) GetAllSpots() (*Response, error) {
	return c.httpClient.GET("/api/v1/admin/spots", nil)
}

func (c *AdminClient) AddSpot(req *model.AddSpotRequest) (*Response, error) {
	return c.httpClient.POST("/api/v1/admin/spots", req, nil)
}

func (c *AdminClient) RemoveSpot(id int) (*Response, error) {
	return c.httpClient.DELETE(fmt.Sprintf("/api/v1/admin/spots/%d", id), nil)
}

func (c *AdminClient) FreeSpot(id int) (*Response, error) {
	return c.httpClient.POST(fmt.Sprintf("/api/v1/admin/spots/%d/free", id), struct{}{}, nil)
}

func (c *AdminClient) GetSpotHistory(id int) (*Response, error) {
	return c.httpClient.GET(fmt.Sprintf("/api/v1/admin/spots/%d/history", id), nil)
}

func (c *AdminClient) GetAllReservations() (*Response, error) {
	return c.httpClient.GET("/api/v1/admin/reservations", nil)
}

func (c *AdminClient) CancelReservation(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/v1/admin/reservations/"+url.PathEscape(id), nil)
}

func (c *AdminClient) AddZone(req *model.AddZoneRequest) (*Response, error) {
	return c.httpClient.POST("/api/v1/admin/zones", req, nil)
}

func (c *AdminClient) RemoveZone(name string) (*Response, error) {
	return c.httpClient.DELETE("/api/v1/admin/zones/"+url.PathEscape(name), nil)
}

func (c *AdminClient) ListSpotsByZone(name string) (*Response, error) {
	path := fmt.Sprintf("/api/v1/admin/zones/%s/spots", url.PathEscape(name))
	return c.httpClient.GET(path, nil)
}

func (c *AdminClient) DecodeHistory(resp *Response) ([]model.HistoryEntry, error) {
	var history []model.HistoryEntry
	if err := resp.DecodeData(&history); err != nil {
		return nil, err
	}
	return history, nil
}
