// Package geolocate resuelve coordenadas del navegador a una dirección
// legible, y clasifica los fallos del proveedor de ubicación del device.
package geolocate

import (
	"encoding/json"
	"net/http"

	"rescue-revolution/internal/domain/session"
	"rescue-revolution/internal/domain/toasts"
	"rescue-revolution/internal/platform/logger"
	"rescue-revolution/internal/ports/geo"

	"github.com/go-chi/chi/v5"
)

type Deps struct {
	Sessions *session.Store
	Toasts   *toasts.Manager
	Resolver geo.Resolver
	Log      logger.Logger
}

func RegisterRoutes(r chi.Router, d Deps) {
	r.Post("/geo/reverse", reverseHandler(d))
}

// reverseRequest trae coordenadas O un error_code del geolocation API del
// navegador (1=permission denied, 2=position unavailable, 3=timeout).
type reverseRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	ErrorCode *int     `json:"error_code"`
}

type reverseResponse struct {
	Address string `json:"address,omitempty"`
	Error   string `json:"error,omitempty"`
}

func reverseHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := d.Sessions.SID(w, r)
		queue := d.Toasts.For(sid)

		var req reverseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, reverseResponse{Error: "invalid json"})
			return
		}

		if req.ErrorCode != nil {
			msg := Classify(*req.ErrorCode)
			queue.Show(msg, toasts.SeverityError)
			writeJSON(w, http.StatusBadRequest, reverseResponse{Error: msg})
			return
		}

		if req.Latitude == nil || req.Longitude == nil {
			writeJSON(w, http.StatusBadRequest, reverseResponse{Error: "latitude and longitude are required"})
			return
		}

		place, err := d.Resolver.Reverse(r.Context(), *req.Latitude, *req.Longitude)
		if err != nil {
			d.Log.Warn("geolocate: reverse failed", logger.Fields{"err": err.Error()})
			msg := "Could not look up your address"
			queue.Show(msg, toasts.SeverityError)
			writeJSON(w, http.StatusBadGateway, reverseResponse{Error: msg})
			return
		}

		writeJSON(w, http.StatusOK, reverseResponse{Address: place.Address()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
