package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/metrics"
	"github.com/joestump/bookmarks-api/internal/store"
)

// maxBodyBytes caps request bodies on write routes.
const maxBodyBytes = 1 << 20

// bookmarksAPIHandler provides REST handlers for bookmark management.
type bookmarksAPIHandler struct {
	bookmarks  store.BookmarkStoreIface
	log        logger.Logger
	production bool
}

// registerBookmarkRoutes registers the collection routes and the
// identifier-scoped routes, the latter behind resolveBookmark.
func registerBookmarkRoutes(r chi.Router, h *bookmarksAPIHandler) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.resolveBookmark)
		r.Get("/", h.Get)
		r.Delete("/", h.Delete)
		r.Patch("/", h.Update)
	})
}

// List returns every bookmark, sanitized, in insertion order.
// GET /api/bookmarks
//
// @Summary      List bookmarks
// @Description  Returns all bookmarks in insertion order.
// @Tags         Bookmarks
// @Produce      json
// @Success      200  {array}   BookmarkResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       / [get]
func (h *bookmarksAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.bookmarks.ListAll(r.Context())
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("list", "ok").Inc()
	writeJSON(w, http.StatusOK, sanitizeBookmarks(bookmarks))
}

// Create validates the body, stores the bookmark, and echoes it back.
// POST /api/bookmarks
//
// @Summary      Create a bookmark
// @Description  title, url, and rating are required. rating is an integer from 0 to 5; url must be http or https.
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Param        body  body      CreateBookmarkRequest  true  "Bookmark to create"
// @Success      201   {object}  BookmarkResponse
// @Header       201   {string}  Location  "Path of the created bookmark"
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       / [post]
func (h *bookmarksAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(w, r)
	if err != nil {
		h.invalid(w, "create", err, msgInvalidData)
		return
	}

	nb, err := store.ValidateNewBookmark(payload)
	if err != nil {
		msg := msgInvalidData
		if errors.Is(err, store.ErrMissingField) {
			msg = msgMissingField
		}
		h.invalid(w, "create", err, msg)
		return
	}

	b, err := h.bookmarks.Create(r.Context(), nb)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}

	h.log.Infof("Bookmark with id %d created.", b.ID)
	metrics.OperationsTotal.WithLabelValues("create", "ok").Inc()

	w.Header().Set("Location", path.Join(r.URL.Path, strconv.FormatInt(b.ID, 10)))
	writeJSON(w, http.StatusCreated, sanitizeBookmark(b))
}

// Get returns the bookmark loaded by resolveBookmark.
// GET /api/bookmarks/{id}
//
// @Summary      Get a bookmark
// @Tags         Bookmarks
// @Produce      json
// @Param        id   path      int  true  "Bookmark ID"
// @Success      200  {object}  BookmarkResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /{id} [get]
func (h *bookmarksAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	b := bookmarkFromContext(r.Context())
	metrics.OperationsTotal.WithLabelValues("get", "ok").Inc()
	writeJSON(w, http.StatusOK, sanitizeBookmark(b))
}

// Delete removes the bookmark loaded by resolveBookmark.
// DELETE /api/bookmarks/{id}
//
// @Summary      Delete a bookmark
// @Tags         Bookmarks
// @Param        id   path  int  true  "Bookmark ID"
// @Success      204  "No Content"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /{id} [delete]
func (h *bookmarksAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	b := bookmarkFromContext(r.Context())

	if _, err := h.bookmarks.Delete(r.Context(), b.ID); err != nil {
		h.fail(w, r, "delete", err)
		return
	}

	h.log.Infof("Bookmark with id %d deleted.", b.ID)
	metrics.OperationsTotal.WithLabelValues("delete", "ok").Inc()
	w.WriteHeader(http.StatusNoContent)
}

// Update replaces the supplied fields of the bookmark loaded by resolveBookmark.
// PATCH /api/bookmarks/{id}
//
// @Summary      Update a bookmark
// @Description  Partial update. At least one of title, url, description, rating must be supplied.
// @Tags         Bookmarks
// @Accept       json
// @Param        id    path  int                    true  "Bookmark ID"
// @Param        body  body  UpdateBookmarkRequest  true  "Fields to update"
// @Success      204   "No Content"
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /{id} [patch]
func (h *bookmarksAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	b := bookmarkFromContext(r.Context())

	payload, err := decodePayload(w, r)
	if err != nil {
		h.invalid(w, "update", err, msgInvalidData)
		return
	}

	u, err := store.ValidateBookmarkUpdate(payload)
	if err != nil {
		msg := msgInvalidData
		if errors.Is(err, store.ErrEmptyUpdate) {
			msg = msgEmptyUpdate
		}
		h.invalid(w, "update", err, msg)
		return
	}

	if _, err := h.bookmarks.Update(r.Context(), b.ID, u); err != nil {
		h.fail(w, r, "update", err)
		return
	}

	h.log.Infof("Bookmark with id %d updated.", b.ID)
	metrics.OperationsTotal.WithLabelValues("update", "ok").Inc()
	w.WriteHeader(http.StatusNoContent)
}

// invalid answers a client-input error with 400.
func (h *bookmarksAPIHandler) invalid(w http.ResponseWriter, op string, err error, message string) {
	h.log.Error(err.Error(), logger.String("op", op))
	metrics.OperationsTotal.WithLabelValues(op, "invalid").Inc()
	writeError(w, http.StatusBadRequest, message)
}

// fail answers an unexpected storage error with 500.
func (h *bookmarksAPIHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.log.Error("bookmark storage failure",
		logger.String("op", op),
		logger.String("path", r.URL.Path),
		logger.Error(err))
	metrics.OperationsTotal.WithLabelValues(op, "error").Inc()
	InternalError(w, err, h.production)
}

// decodePayload reads a JSON object body into a generic map. An empty body
// decodes to an empty map.
func decodePayload(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	payload := map[string]any{}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if payload == nil {
		// A literal null body.
		payload = map[string]any{}
	}
	return payload, nil
}
