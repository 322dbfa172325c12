package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"host-ledger/internal/app/operator"
	"host-ledger/internal/chips"
	"host-ledger/internal/session"
	"host-ledger/internal/snapshot"
)

func WriteHTTPError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": code})
}

// writeServiceError maps core sentinel errors to HTTP statuses.
// Validation failures are 400, state conflicts 409, missing things 404.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrPlayerNotFound):
		WriteHTTPError(w, http.StatusNotFound, "player_not_found")
	case errors.Is(err, operator.ErrNoSnapshot):
		WriteHTTPError(w, http.StatusNotFound, "no_snapshot")
	case errors.Is(err, session.ErrDuplicateName):
		WriteHTTPError(w, http.StatusConflict, "duplicate_name")
	case errors.Is(err, session.ErrInvalidStatus):
		WriteHTTPError(w, http.StatusConflict, "invalid_status")
	case errors.Is(err, snapshot.ErrStaleSnapshot):
		WriteHTTPError(w, http.StatusConflict, "stale_snapshot")
	case errors.Is(err, session.ErrInvalidAmount):
		WriteHTTPError(w, http.StatusBadRequest, session.ErrInvalidAmount.Error())
	case errors.Is(err, session.ErrNegativeChips):
		WriteHTTPError(w, http.StatusBadRequest, session.ErrNegativeChips.Error())
	case errors.Is(err, session.ErrNoDebt):
		WriteHTTPError(w, http.StatusBadRequest, session.ErrNoDebt.Error())
	case errors.Is(err, session.ErrBadImportRow):
		WriteHTTPError(w, http.StatusBadRequest, session.ErrBadImportRow.Error())
	case errors.Is(err, chips.ErrNonPositiveDenomination):
		WriteHTTPError(w, http.StatusBadRequest, chips.ErrNonPositiveDenomination.Error())
	case errors.Is(err, operator.ErrNoSnapshotSink):
		WriteHTTPError(w, http.StatusServiceUnavailable, "no_snapshot_sink")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
