// Package api provides HTTP API handlers for trained gestures.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/pose"
)

// Catalog is the set of trained gestures the API exposes.
// *gesture.Registry satisfies it, as does the app session.
type Catalog interface {
	Entries() []gesture.Entry
	Get(name string) (pose.Signature, bool)
	Train(name string, sig pose.Signature) error
	Remove(name string) bool
}

// GestureHandler handles HTTP requests for gesture resources.
type GestureHandler struct {
	catalog Catalog
}

// NewGestureHandler creates a new GestureHandler over catalog.
func NewGestureHandler(catalog Catalog) *GestureHandler {
	return &GestureHandler{catalog: catalog}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *GestureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/gestures or /api/gestures/{name}
	path := strings.TrimPrefix(r.URL.Path, "/api/gestures")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	name := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, name)
	case http.MethodDelete:
		h.delete(w, r, name)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type createGestureRequest struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
}

type gestureResponse struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
}

type listGesturesResponse struct {
	Gestures []gestureResponse `json:"gestures"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(name string, sig pose.Signature) gestureResponse {
	return gestureResponse{
		Name:      name,
		Signature: sig.String(),
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/gestures and returns all gestures in training order.
func (h *GestureHandler) list(w http.ResponseWriter, r *http.Request) {
	entries := h.catalog.Entries()

	response := listGesturesResponse{
		Gestures: make([]gestureResponse, 0, len(entries)),
	}
	for _, e := range entries {
		response.Gestures = append(response.Gestures, toResponse(e.Name, e.Signature))
	}

	WriteJSON(w, http.StatusOK, response)
}

// get handles GET /api/gestures/{name}.
func (h *GestureHandler) get(w http.ResponseWriter, r *http.Request, name string) {
	sig, ok := h.catalog.Get(name)
	if !ok {
		WriteError(w, http.StatusNotFound, "Gesture not found")
		return
	}
	WriteJSON(w, http.StatusOK, toResponse(name, sig))
}

// create handles POST /api/gestures, training a gesture from a signature string.
func (h *GestureHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createGestureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		WriteError(w, http.StatusBadRequest, "Name is required")
		return
	}

	sig, err := pose.ParseSignature(req.Signature)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid signature")
		return
	}

	if err := h.catalog.Train(req.Name, sig); err != nil {
		switch {
		case errors.Is(err, gesture.ErrDuplicateName), errors.Is(err, gesture.ErrDuplicateSignature):
			WriteError(w, http.StatusConflict, err.Error())
		case errors.Is(err, gesture.ErrEmptyName):
			WriteError(w, http.StatusBadRequest, err.Error())
		default:
			WriteError(w, http.StatusInternalServerError, "Failed to train gesture")
		}
		return
	}

	WriteJSON(w, http.StatusCreated, toResponse(req.Name, sig))
}

// delete handles DELETE /api/gestures/{name}.
func (h *GestureHandler) delete(w http.ResponseWriter, r *http.Request, name string) {
	if !h.catalog.Remove(name) {
		WriteError(w, http.StatusNotFound, "Gesture not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
