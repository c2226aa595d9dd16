// Package fakebackend is an in-memory implementation of the babycare REST
// API for tests. Routes can be told to fail or stall to exercise error paths.
package fakebackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/babycare/internal/client/models"
	"github.com/dmitrijs2005/babycare/internal/common"
	"github.com/gorilla/mux"
)

// Route names accepted by Fail, Stall and Calls.
const (
	RouteHealth             = "health"
	RouteLogin              = "login"
	RouteRegister           = "register"
	RouteVerify             = "verify"
	RouteUser               = "user"
	RouteGrowthList         = "growth.list"
	RouteGrowthCreate       = "growth.create"
	RouteImmunizationUpdate = "immunization.update"
	RouteMilestoneUpdate    = "milestone.update"
)

type account struct {
	password string
	user     models.User
}

type fault struct {
	status int
	body   string
}

type Backend struct {
	mu sync.Mutex

	accounts      map[string]*account
	tokens        map[string]string
	growth        map[string][]models.GrowthRecord
	immunizations map[string]map[string]models.RecordUpdate
	milestones    map[string]map[string]models.RecordUpdate

	faults      map[string]fault
	stalls      map[string]time.Duration
	calls       map[string]int
	lastTokens  map[string]string
	lastRequest map[string]*http.Request
	nextID      int
}

func New() *Backend {
	return &Backend{
		accounts:      map[string]*account{},
		tokens:        map[string]string{},
		growth:        map[string][]models.GrowthRecord{},
		immunizations: map[string]map[string]models.RecordUpdate{},
		milestones:    map[string]map[string]models.RecordUpdate{},
		faults:        map[string]fault{},
		stalls:        map[string]time.Duration{},
		calls:         map[string]int{},
		lastTokens:    map[string]string{},
		lastRequest:   map[string]*http.Request{},
	}
}

// Start serves the backend on an httptest server closed at test cleanup.
func (b *Backend) Start(t testing.TB) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func (b *Backend) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(b.instrument)

	r.HandleFunc("/health", b.health).Methods(http.MethodGet).Name(RouteHealth)
	r.HandleFunc("/auth/login", b.login).Methods(http.MethodPost).Name(RouteLogin)
	r.HandleFunc("/auth/register", b.register).Methods(http.MethodPost).Name(RouteRegister)
	r.HandleFunc("/verify-token", b.verify).Methods(http.MethodGet).Name(RouteVerify)
	r.HandleFunc("/auth/user", b.authed(b.currentUser)).Methods(http.MethodGet).Name(RouteUser)
	r.HandleFunc("/babies/{baby}/growth", b.authed(b.listGrowth)).Methods(http.MethodGet).Name(RouteGrowthList)
	r.HandleFunc("/babies/{baby}/growth", b.authed(b.createGrowth)).Methods(http.MethodPost).Name(RouteGrowthCreate)
	r.HandleFunc("/babies/{baby}/immunizations/{record}", b.authed(b.updateImmunization)).Methods(http.MethodPut).Name(RouteImmunizationUpdate)
	r.HandleFunc("/babies/{baby}/milestones/{record}", b.authed(b.updateMilestone)).Methods(http.MethodPut).Name(RouteMilestoneUpdate)

	return r
}

// AddAccount registers a user and returns a fresh valid token for it.
func (b *Backend) AddAccount(email, password, babyID string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.accounts[email] = &account{
		password: password,
		user:     models.User{ID: fmt.Sprintf("u-%d", b.nextID), Email: email, BabyID: babyID},
	}
	return b.issueTokenLocked(email)
}

// IssueToken returns a new valid token for an existing account.
func (b *Backend) IssueToken(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issueTokenLocked(email)
}

// Revoke invalidates token.
func (b *Backend) Revoke(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.tokens, token)
}

// SetOnboardingComplete changes what /auth/user reports for email.
func (b *Backend) SetOnboardingComplete(email string, done bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if acc, ok := b.accounts[email]; ok {
		acc.user.OnboardingComplete = &done
	}
}

// Fail makes every following request to route answer status with body until
// Clear is called.
func (b *Backend) Fail(route string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults[route] = fault{status: status, body: body}
}

// Stall delays every following request to route by d.
func (b *Backend) Stall(route string, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stalls[route] = d
}

// Clear removes faults and stalls.
func (b *Backend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults = map[string]fault{}
	b.stalls = map[string]time.Duration{}
}

// Calls reports how many requests reached route.
func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

// LastToken is the bearer token of the latest request to route.
func (b *Backend) LastToken(route string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastTokens[route]
}

// LastRequest is the latest request to route.
func (b *Backend) LastRequest(route string) *http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastRequest[route]
}

func (b *Backend) Growth(babyID string) []models.GrowthRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.GrowthRecord, len(b.growth[babyID]))
	copy(out, b.growth[babyID])
	return out
}

func (b *Backend) SeedGrowth(babyID string, recs ...models.GrowthRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.growth[babyID] = append(b.growth[babyID], recs...)
}

func (b *Backend) Immunization(babyID, recordID string) (models.RecordUpdate, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.immunizations[babyID][recordID]
	return u, ok
}

func (b *Backend) Milestone(babyID, recordID string) (models.RecordUpdate, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.milestones[babyID][recordID]
	return u, ok
}

func (b *Backend) issueTokenLocked(email string) string {
	b.nextID++
	tok := fmt.Sprintf("tok-%d", b.nextID)
	b.tokens[tok] = email
	return tok
}

func (b *Backend) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}

		b.mu.Lock()
		b.calls[name]++
		b.lastTokens[name] = bearer(r)
		b.lastRequest[name] = r
		f, failing := b.faults[name]
		stall := b.stalls[name]
		b.mu.Unlock()

		if stall > 0 {
			select {
			case <-time.After(stall):
			case <-r.Context().Done():
				return
			}
		}

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearer(r *http.Request) string {
	h := r.Header.Get(common.AuthorizationHeaderName)
	return strings.TrimPrefix(h, common.BearerScheme)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorBody{Message: msg})
}

// authed resolves the bearer token to an account or answers 401.
func (b *Backend) authed(h func(http.ResponseWriter, *http.Request, *account)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		email, ok := b.tokens[bearer(r)]
		acc := b.accounts[email]
		b.mu.Unlock()
		if !ok || acc == nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		h(w, r, acc)
	}
}

func (b *Backend) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[creds.Email]
	if !ok || acc.password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, models.ErrorBody{Error: "invalid email or password"})
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResult{Token: b.issueTokenLocked(creds.Email), User: acc.user})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.accounts[reg.Email]; exists {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	b.nextID++
	done := false
	acc := &account{
		password: reg.Password,
		user: models.User{
			ID:                 fmt.Sprintf("u-%d", b.nextID),
			Email:              reg.Email,
			Name:               reg.Name,
			BabyID:             fmt.Sprintf("baby-%d", b.nextID),
			OnboardingComplete: &done,
		},
	}
	b.accounts[reg.Email] = acc
	writeJSON(w, http.StatusCreated, models.AuthResult{Token: b.issueTokenLocked(reg.Email), User: acc.user})
}

func (b *Backend) verify(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	_, ok := b.tokens[bearer(r)]
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"valid": ok})
}

func (b *Backend) currentUser(w http.ResponseWriter, _ *http.Request, acc *account) {
	b.mu.Lock()
	u := acc.user
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, u)
}

func (b *Backend) listGrowth(w http.ResponseWriter, r *http.Request, _ *account) {
	baby := mux.Vars(r)["baby"]
	writeJSON(w, http.StatusOK, b.Growth(baby))
}

func (b *Backend) createGrowth(w http.ResponseWriter, r *http.Request, _ *account) {
	baby := mux.Vars(r)["baby"]

	var in models.NewGrowthRecord
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	b.mu.Lock()
	b.nextID++
	rec := models.GrowthRecord{
		ID:         fmt.Sprintf("g-%d", b.nextID),
		BabyID:     baby,
		Height:     in.Height,
		Weight:     in.Weight,
		HeadSize:   in.HeadSize,
		MeasuredAt: in.MeasuredAt,
		Notes:      in.Notes,
	}
	b.growth[baby] = append(b.growth[baby], rec)
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, rec)
}

func (b *Backend) updateImmunization(w http.ResponseWriter, r *http.Request, _ *account) {
	b.storeUpdate(w, r, b.immunizations)
}

func (b *Backend) updateMilestone(w http.ResponseWriter, r *http.Request, _ *account) {
	b.storeUpdate(w, r, b.milestones)
}

func (b *Backend) storeUpdate(w http.ResponseWriter, r *http.Request, dst map[string]map[string]models.RecordUpdate) {
	vars := mux.Vars(r)

	var upd models.RecordUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	b.mu.Lock()
	if dst[vars["baby"]] == nil {
		dst[vars["baby"]] = map[string]models.RecordUpdate{}
	}
	dst[vars["baby"]][vars["record"]] = upd
	b.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}
