package bigdatacloud

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"rescue-revolution/internal/platform/httpclient"
	"rescue-revolution/internal/ports/geo"
)

var (
	ErrGeocodeNotConfigured = errors.New("geocode client not configured")
	ErrGeocodeUpstream      = errors.New("geocode upstream error")
)

const (
	DefaultBaseURL = "https://api.bigdatacloud.net"

	// El servicio es lento en el peor caso; más de 10s no vale la pena
	// porque el usuario ya abandonó el formulario.
	reverseTimeout = 10 * time.Second

	reversePath = "/data/reverse-geocode-client"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implementa geo.Resolver contra el endpoint público de
// reverse-geocoding de BigDataCloud (keyed por lat/lon, sin API key).
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = reverseTimeout
	}

	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

type reverseResponse struct {
	Locality             string `json:"locality"`
	City                 string `json:"city"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	Postcode             string `json:"postcode"`
}

func (c *Client) Reverse(ctx context.Context, latitude, longitude float64) (geo.Place, error) {
	if c == nil || c.http == nil {
		return geo.Place{}, ErrGeocodeNotConfigured
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("localityLanguage", "en")

	var out reverseResponse
	err := c.http.DoJSON(ctx, http.MethodGet, reversePath+"?"+q.Encode(), nil, nil, &out)
	if err != nil {
		return geo.Place{}, fmt.Errorf("%w: %v", ErrGeocodeUpstream, err)
	}

	return geo.Place{
		Locality:             out.Locality,
		City:                 out.City,
		PrincipalSubdivision: out.PrincipalSubdivision,
		Postcode:             out.Postcode,
	}, nil
}
