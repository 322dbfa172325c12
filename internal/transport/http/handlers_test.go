package httptransport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"host-ledger/internal/app/operator"
	"host-ledger/internal/chips"
	"host-ledger/internal/session"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	sess := session.New(session.Config{Mode: session.ModeTimeCharge, HostSharePct: 60, DefaultFee: 170}, chips.Default())
	svc := operator.NewService("host-test", sess, nil, nil)
	return NewRouter(svc, "", nil)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPlayerLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/players", map[string]any{"name": "Alice", "cash_in": 1000})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add player: %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/players", map[string]any{"name": "Alice", "cash_in": 500})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate should 409, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/players/Alice/chips", map[string]any{"counts": map[string]int{"white": 40}})
	if rec.Code != http.StatusOK {
		t.Fatalf("set chips: %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/players/Alice/cashout/preview?fee=170&method=deduct", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("preview: %d %s", rec.Code, rec.Body)
	}
	var proj session.Projection
	if err := json.Unmarshal(rec.Body.Bytes(), &proj); err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if proj.StackValue != 200 || proj.CashPayout != 30 {
		t.Fatalf("preview wrong: %+v", proj)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/players/Alice/cashout", map[string]any{"fee": 170, "method": "deduct"})
	if rec.Code != http.StatusOK {
		t.Fatalf("cashout: %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/players/Alice/cashout", map[string]any{"fee": 170, "method": "deduct"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("second cashout should 409, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/audit", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("audit: %d", rec.Code)
	}
	var audit session.AuditReport
	if err := json.Unmarshal(rec.Body.Bytes(), &audit); err != nil {
		t.Fatalf("decode audit: %v", err)
	}
	if audit.Discrepancy != 800 || audit.Verdict != session.VerdictShortage {
		t.Fatalf("audit wrong: %+v", audit)
	}
}

func TestUnknownPlayerIs404(t *testing.T) {
	r := newTestRouter(t)
	rec := doJSON(t, r, http.MethodPost, "/api/players/ghost/rebuy", map[string]any{"amount": 100})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestValidationErrorsAre400(t *testing.T) {
	r := newTestRouter(t)
	rec := doJSON(t, r, http.MethodPost, "/api/house/rake", map[string]any{"amount": -5})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body)
	}
	rec = doJSON(t, r, http.MethodPost, "/api/house/rake", map[string]any{"amount": 5, "bogus": 1})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown fields should 400, got %d", rec.Code)
	}
}

func TestInsuranceEndpoints(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/house/insurance/win", map[string]any{"bet": 200})
	if rec.Code != http.StatusOK {
		t.Fatalf("win: %d %s", rec.Code, rec.Body)
	}
	rec = doJSON(t, r, http.MethodPost, "/api/house/insurance/loss", map[string]any{"bet": 100, "outs": 4})
	if rec.Code != http.StatusOK {
		t.Fatalf("loss: %d %s", rec.Code, rec.Body)
	}
	var loss struct {
		Payout int64 `json:"payout"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loss); err != nil {
		t.Fatalf("decode loss: %v", err)
	}
	if loss.Payout != 800 {
		t.Fatalf("payout = %d, want 800", loss.Payout)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/summary", nil)
	var sum session.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.TotalInsurance != -600 {
		t.Fatalf("insurance total = %d, want -600", sum.TotalInsurance)
	}
}

func TestCloseWithoutSinkWarns(t *testing.T) {
	r := newTestRouter(t)
	rec := doJSON(t, r, http.MethodPost, "/api/session/close", map[string]any{"notes": "n"})
	if rec.Code != http.StatusOK {
		t.Fatalf("close: %d %s", rec.Code, rec.Body)
	}
	var res operator.CloseResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode close: %v", err)
	}
	if res.Warning == "" {
		t.Fatal("expected warning with no record sink")
	}
}

func TestImportEndpointAllOrNothing(t *testing.T) {
	r := newTestRouter(t)
	rows := []map[string]any{
		{"name": "Bob", "buyin": 500, "final_stack": 400, "payout": 400},
		{"name": "Bob", "buyin": 100},
	}
	rec := doJSON(t, r, http.MethodPost, "/api/session/import", map[string]any{"rows": rows})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate rows should 400, got %d %s", rec.Code, rec.Body)
	}
	rec = doJSON(t, r, http.MethodGet, "/api/players", nil)
	var list struct {
		Players []operator.PlayerView `json:"players"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode players: %v", err)
	}
	if len(list.Players) != 0 {
		t.Fatal("rejected import must not add players")
	}
}

func TestSnapshotEndpointsWithoutSink(t *testing.T) {
	r := newTestRouter(t)
	rec := doJSON(t, r, http.MethodPost, "/api/session/snapshot", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without sink, got %d", rec.Code)
	}
}

func TestAuthEnforcedWhenKeyConfigured(t *testing.T) {
	sess := session.New(session.Config{Mode: session.ModeTimeCharge}, chips.Default())
	svc := operator.NewService("host-test", sess, nil, nil)
	r := NewRouter(svc, "secret-key", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	req.Header.Set("Authorization", "Bearer secret-key")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d", rec.Code)
	}

	// healthz stays open
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz should not require auth, got %d", rec.Code)
	}
}
