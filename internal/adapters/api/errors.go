package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError maps a use-case error to an HTTP status: missing referenced
// entities are 404, optimistic conflicts 409, every other business answer
// 422, and anything that is not a domain error is a plain 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *auction.Error
	if !errors.As(err, &domainErr) {
		h.logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "InternalError", Message: "internal error"})
		return
	}
	writeJSON(w, statusOf(domainErr), errorResponse{Error: domainErr.Code(), Message: domainErr.Error()})
}

func statusOf(err *auction.Error) int {
	switch err {
	case auction.ErrUserNotFound, auction.ErrItemNotFound, auction.ErrAuctionNotFound, auction.ErrAutoBidNotFound:
		return http.StatusNotFound
	case auction.ErrHighestBidHasChanged, auction.ErrAutoBidAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func (h *Handler) writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "BadRequest", Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
