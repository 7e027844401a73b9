package client

import (
	"fmt"
	"net/url"

	"parq/pkg/model"
)

// ParkingClient covers the client-facing API. Phone identifies the
// caller for rate limiting; it travels in the X-Phone-Number header.
type ParkingClient struct {
	httpClient *HttpClient
	phone      string
}

func NewParkingClient(baseURL, phone string) *ParkingClient {
	return &ParkingClient{
		httpClient: NewHttpClient(baseURL),
		phone:      phone,
	}
}

func (c *ParkingClient) headers() map[string]string {
	if c.phone == "" {
		return nil
	}
	return map[string]string{"X-Phone-Number": c.phone}
}

func (c *ParkingClient) ListZones() (*Response, error) {
	return c.httpClient.GET("/api/v1/zones", c.headers())
}

func (c *ParkingClient) ListAvailableSpots(zone string) (*Response, error) {
	path := "/api/v1/spots/available"
	if zone != "" {
		path += "?zone=" + url.QueryEscape(zone)
	}
	return c.httpClient.GET(path, c.headers())
}

func (c *ParkingClient) Reserve(req *model.ReservationRequest) (*Response, error) {
	return c.httpClient.POST("/api/v1/reservations", req, c.headers())
}

func (c *ParkingClient) GetReservation(id string) (*Response, error) {
	return c.httpClient.GET("/api/v1/reservations/"+url.PathEscape(id), c.headers())
}

func (c *ParkingClient) Pay(id string, payment *model.Payment) (*Response, error) {
	path := fmt.Sprintf("/api/v1/reservations/%s/payment", url.PathEscape(id))
	return c.httpClient.POST(path, payment, c.headers())
}

func (c *ParkingClient) DecodeReservation(resp *Response) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := resp.DecodeData(&reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (c *ParkingClient) DecodeSpots(resp *Response) ([]model.Spot, error) {
	var spots []model.Spot
	if err := resp.DecodeData(&spots); err != nil {
		return nil, err
	}
	return spots, nil
}
