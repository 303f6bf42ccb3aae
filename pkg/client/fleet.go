package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"fleetbook/pkg/model"
)

// FleetClient talks to the fleet service's vehicle and driver endpoints.
type FleetClient struct {
	httpClient *HttpClient
}

func NewFleetClient(baseUrl string) *FleetClient {
	return &FleetClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *FleetClient) WaitForHealthy() error {
	return c.httpClient.WaitForHealthy(30 * time.Second)
}

func (c *FleetClient) CreateVehicle(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/vehicles", body)
}

func (c *FleetClient) GetVehicle(id string) (*Response, error) {
	return c.httpClient.GET("/api/v1/vehicles/" + url.PathEscape(id))
}

func (c *FleetClient) ListVehicles(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/vehicles?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *FleetClient) UpdateVehicle(id string, body any) (*Response, error) {
	return c.httpClient.PATCH("/api/v1/vehicles/"+url.PathEscape(id), body)
}

func (c *FleetClient) DeleteVehicle(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/v1/vehicles/" + url.PathEscape(id))
}

func (c *FleetClient) CreateDriver(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/drivers", body)
}

func (c *FleetClient) GetDriver(id string) (*Response, error) {
	return c.httpClient.GET("/api/v1/drivers/" + url.PathEscape(id))
}

func (c *FleetClient) ListDrivers(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/drivers?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *FleetClient) UpdateDriver(id string, body any) (*Response, error) {
	return c.httpClient.PATCH("/api/v1/drivers/"+url.PathEscape(id), body)
}

func (c *FleetClient) DeleteDriver(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/v1/drivers/" + url.PathEscape(id))
}

func (c *FleetClient) DecodeVehicle(resp *Response) (*model.Vehicle, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode vehicle wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var vehicle model.Vehicle
	if err := json.Unmarshal(wrapper.Data, &vehicle); err != nil {
		return nil, fmt.Errorf("could not decode vehicle json:\n%+v\n%s", resp.ToString(), err)
	}
	return &vehicle, nil
}

func (c *FleetClient) DecodeDriver(resp *Response) (*model.Driver, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode driver wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var driver model.Driver
	if err := json.Unmarshal(wrapper.Data, &driver); err != nil {
		return nil, fmt.Errorf("could not decode driver json:\n%+v\n%s", resp.ToString(), err)
	}
	return &driver, nil
}
