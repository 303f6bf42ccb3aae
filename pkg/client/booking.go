package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"fleetbook/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseUrl string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *BookingClient) WaitForHealthy() error {
	return c.httpClient.WaitForHealthy(30 * time.Second)
}

func (c *BookingClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/bookings", body)
}

func (c *BookingClient) CreateRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/api/v1/bookings", rawBody)
}

func (c *BookingClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/bookings?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *BookingClient) SearchByResource(vehicleID, driverID, startTime, endTime string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	if vehicleID != "" {
		q.Set("vehicle_id", vehicleID)
	}
	if driverID != "" {
		q.Set("driver_id", driverID)
	}
	if startTime != "" {
		q.Set("start_time", startTime)
	}
	if endTime != "" {
		q.Set("end_time", endTime)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	return c.httpClient.GET("/api/v1/bookings?" + q.Encode())
}

func (c *BookingClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/api/v1/bookings/" + url.PathEscape(id))
}

// Transition endpoints take no fields; an empty JSON object satisfies the
// content-type checks on POST.

func (c *BookingClient) Start(id string) (*Response, error) {
	return c.httpClient.POST("/api/v1/bookings/"+url.PathEscape(id)+"/start", struct{}{})
}

func (c *BookingClient) Complete(id string) (*Response, error) {
	return c.httpClient.POST("/api/v1/bookings/"+url.PathEscape(id)+"/complete", struct{}{})
}

func (c *BookingClient) Cancel(id string) (*Response, error) {
	return c.httpClient.POST("/api/v1/bookings/"+url.PathEscape(id)+"/cancel", struct{}{})
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var booking model.Booking
	if err := json.Unmarshal(wrapper.Data, &booking); err != nil {
		return nil, fmt.Errorf("could not decode booking json:\n%+v\n%s", resp.ToString(), err)
	}

	return &booking, nil
}

func (c *BookingClient) DecodeBookings(resp *Response) ([]*model.Booking, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var bookings []*model.Booking
	if err := json.Unmarshal(wrapper.Data, &bookings); err != nil {
		return nil, nil, fmt.Errorf("could not decode booking list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return bookings, metadata, nil
}
