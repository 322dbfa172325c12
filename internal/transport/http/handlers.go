package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"host-ledger/internal/app/operator"
	"host-ledger/internal/chips"
	"host-ledger/internal/session"
)

type Handlers struct {
	svc *operator.Service
}

func NewHandlers(svc *operator.Service) *Handlers {
	return &Handlers{svc: svc}
}

func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handlers) ListPlayers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"players": h.svc.Players()})
	}
}

func (h *Handlers) AddPlayer() http.HandlerFunc {
	type request struct {
		Name     string `json:"name"`
		CashIn   int64  `json:"cash_in"`
		CreditIn int64  `json:"credit_in"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decode(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := h.svc.AddPlayer(r.Context(), req.Name, req.CashIn, req.CreditIn); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]any{"name": req.Name})
	}
}

func (h *Handlers) Rebuy() http.HandlerFunc {
	type request struct {
		Amount int64 `json:"amount"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decode(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := h.svc.Rebuy(r.Context(), chi.URLParam(r, "name"), req.Amount); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *Handlers) RepayDebt() http.HandlerFunc {
	type request struct {
		Amount int64 `json:"amount"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decode(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		repaid, err := h.svc.RepayDebt(r.Context(), chi.URLParam(r, "name"), req.Amount)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"repaid": repaid})
	}
}

func (h *Handlers) SitOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.svc.SitOut(r.Context(), chi.URLParam(r, "name")); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *Handlers) ReturnToTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.svc.ReturnToTable(r.Context(), chi.URLParam(r, "name")); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *Handlers) SetChipCounts() http.HandlerFunc {
	type request struct {
		Counts map[chips.Color]int `json:"counts"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decode(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := h.svc.SetChipCounts(r.Context(), chi.URLParam(r, "name"), req.Counts); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func parseFeeMethod(raw string) (session.FeeMethod, bool) {
	switch session.FeeMethod(raw) {
	case session.FeeDeduct, "":
		return session.FeeDeduct, true
	case session.FeeCash:
		return session.FeeCash, true
	}
	return "", false
}

func (h *Handlers) PreviewCashout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fee, err := parseInt64(r.URL.Query().Get("fee"), h.svc.Config().DefaultFee)
		if err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_fee")
			return
		}
		method, ok := parseFeeMethod(r.URL.Query().Get("method"))
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_fee_method")
			return
		}
		proj, err := h.svc.PreviewCashout(chi.URLParam(r, "name"), fee, method)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, proj)
	}
}

func (h *Handlers) CommitCashout() http.HandlerFunc {
	type request struct {
		Fee    *int64 `json:"fee"`
		Method string `json:"method"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decode(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		fee := h.svc.Config().DefaultFee
		if req.Fee != nil {
			fee = *req.Fee
		}
		method, ok := parseFeeMethod(req.Method)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_fee_method")
			return
		}
		proj, err := h.svc.CommitCashout(r.Context(), chi.URLParam(r, "name"), fee, method)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, proj)
	}
}

func (h *Handlers) AddRake() http.HandlerFunc {
	type request struct {
		Amount int64 `json:"amount"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decode(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := h.svc.AddRake(r.Context(), req.Amount); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *Handlers) AddExpense() http.HandlerFunc {
	type request struct {
		Item   string `json:"item"`
		Amount int64  `json:"amount"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decode(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := h.svc.AddExpense(r.Context(), req.Item, req.Amount); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *Handlers) InsuranceWin() http.HandlerFunc {
	type request struct {
		Bet int64 `json:"bet"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decode(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := h.svc.InsuranceWin(r.Context(), req.Bet); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *Handlers) InsuranceLoss() http.HandlerFunc {
	type request struct {
		Bet  int64 `json:"bet"`
		Outs int   `json:"outs"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decode(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		payout, err := h.svc.InsuranceLoss(r.Context(), req.Bet, req.Outs)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"payout": payout})
	}
}

func (h *Handlers) InsuranceManual() http.HandlerFunc {
	type request struct {
		Amount int64 `json:"amount"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decode(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := h.svc.InsuranceManual(r.Context(), req.Amount); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *Handlers) Audit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, h.svc.Audit())
	}
}

func (h *Handlers) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, h.svc.Summary())
	}
}

func (h *Handlers) SetConfig() http.HandlerFunc {
	type request struct {
		Mode          string                `json:"mode"`
		HostSharePct  int                   `json:"host_share_pct"`
		DefaultFee    int64                 `json:"default_fee"`
		Denominations map[chips.Color]int64 `json:"denominations,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decode(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		cfg := session.Config{
			Mode:         session.GameMode(req.Mode),
			HostSharePct: req.HostSharePct,
			DefaultFee:   req.DefaultFee,
		}
		if err := h.svc.SetConfig(r.Context(), cfg); err != nil {
			writeServiceError(w, err)
			return
		}
		if req.Denominations != nil {
			if err := h.svc.SetDenominations(r.Context(), chips.Denominations(req.Denominations)); err != nil {
				writeServiceError(w, err)
				return
			}
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *Handlers) Import() http.HandlerFunc {
	type request struct {
		Rows []session.ImportRow `json:"rows"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decode(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if len(req.Rows) == 0 {
			WriteHTTPError(w, http.StatusBadRequest, "empty_import")
			return
		}
		if err := h.svc.Import(r.Context(), req.Rows); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"imported": len(req.Rows)})
	}
}

func (h *Handlers) CloseSession() http.HandlerFunc {
	type request struct {
		Notes string `json:"notes"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decode(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		res, err := h.svc.CloseSession(r.Context(), req.Notes)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, res)
	}
}

func (h *Handlers) ResetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.svc.ResetSession(r.Context())
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *Handlers) SaveSnapshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version, err := h.svc.SaveSnapshot(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"version": version})
	}
}

func (h *Handlers) RestoreSnapshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version, err := h.svc.RestoreSnapshot(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"version": version})
	}
}

func (h *Handlers) DeleteSnapshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.svc.DeleteSnapshot(r.Context()); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *Handlers) Records() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := h.svc.Records(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if records == nil {
			records = []session.Record{}
		}
		writeJSON(w, map[string]any{"records": records})
	}
}
