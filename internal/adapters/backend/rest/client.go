package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"rescue-revolution/internal/platform/httpclient"
	"rescue-revolution/internal/ports/backend"
)

const defaultTimeout = 10 * time.Second

// Client implementa los ports backend.AuthAPI / PetAPI / IncidentAPI
// contra el REST backend real.
type Client struct {
	http *httpclient.Client
}

func New(baseURL string) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, defaultTimeout)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(hc.BaseURL) == "" {
		return nil, errors.New("rest: base url required")
	}
	return &Client{http: hc}, nil
}

// NewWithHTTPClient permite inyectar el httpclient (tests).
func NewWithHTTPClient(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

// credHeaders arma el header Cookie para que la sesión del backend
// viaje con los requests mutantes.
func credHeaders(creds backend.Credentials) map[string]string {
	if strings.TrimSpace(string(creds)) == "" {
		return nil
	}
	return map[string]string{"Cookie": string(creds)}
}

// mapErr traduce errores del httpclient al modelo de error del port:
// non-2xx con body {"error": ...} => APIError con mensaje; cualquier otra
// cosa (transporte, body ilegible) => APIError sin mensaje para que el
// caller use su fallback genérico.
func mapErr(err error) error {
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		var body struct {
			Error string `json:"error"`
		}
		msg := ""
		if jsonErr := json.Unmarshal([]byte(he.Body), &body); jsonErr == nil {
			msg = strings.TrimSpace(body.Error)
		}
		return &backend.APIError{StatusCode: he.StatusCode, Message: msg}
	}
	return err
}

// credentialsFromHeader extrae las cookies de sesión de un response del
// backend como valor listo para el header Cookie.
func credentialsFromHeader(h http.Header) backend.Credentials {
	resp := http.Response{Header: h}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return ""
	}
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return backend.Credentials(strings.Join(parts, "; "))
}
