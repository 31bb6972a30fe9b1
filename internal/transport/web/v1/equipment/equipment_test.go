package equipment

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/EgorLis/equip-catalog/internal/auth/token"
	"github.com/EgorLis/equip-catalog/internal/catalog"
	"github.com/EgorLis/equip-catalog/internal/domain"
	"github.com/EgorLis/equip-catalog/internal/transport/web/mw"
)

type memRepo struct {
	items       []domain.Equipment
	createCalls int
	listCalls   int
}

func (r *memRepo) Close()                     {}
func (r *memRepo) Ping(context.Context) error { return nil }

func (r *memRepo) CreateEquipment(_ context.Context, e domain.Equipment) (domain.Equipment, error) {
	r.createCalls++
	e.ID = uuid.New()
	e.CreatedAt = time.Now().UTC()
	r.items = append(r.items, e)
	return e, nil
}

func (r *memRepo) EquipmentList(_ context.Context, f domain.EquipmentFilter, skip, limit int) ([]domain.Equipment, error) {
	r.listCalls++
	matched := r.matched(f)
	if skip >= len(matched) {
		return nil, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], nil
}

func (r *memRepo) EquipmentCount(_ context.Context, f domain.EquipmentFilter) (int64, error) {
	return int64(len(r.matched(f))), nil
}

func (r *memRepo) matched(f domain.EquipmentFilter) []domain.Equipment {
	var out []domain.Equipment
	for _, e := range r.items {
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if f.SupplierID != "" && e.SupplierID != f.SupplierID {
			continue
		}
		if f.MinPrice != nil && e.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && e.Price > *f.MaxPrice {
			continue
		}
		out = append(out, e)
	}
	return out
}

type memCache struct {
	m           map[string][]byte
	delPrefixes int
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) { return c.m[key], nil }
func (c *memCache) Set(_ context.Context, key string, val []byte, _ int) error {
	c.m[key] = val
	return nil
}
func (c *memCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.m, k)
	}
	return nil
}
func (c *memCache) DelByPrefix(_ context.Context, prefix string) error {
	c.delPrefixes++
	for k := range c.m {
		if strings.HasPrefix(k, prefix) {
			delete(c.m, k)
		}
	}
	return nil
}
func (c *memCache) Ping(context.Context) error { return nil }
func (c *memCache) Close()                     {}

// поднимает роутер с авторизацией поверх фейков — как в боевом router.go
func setup(t *testing.T) (*memRepo, *memCache, http.Handler, string) {
	t.Helper()

	repo := &memRepo{}
	cache := &memCache{m: map[string][]byte{}}
	logger := log.New(io.Discard, "", 0)

	tm := token.New("test-secret", "equip-catalog", time.Minute)
	bearer, _, err := tm.Issue(context.Background(), "test-client")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	h := &Handler{Log: logger, Catalog: catalog.New(logger, repo, cache)}
	authDeps := mw.AuthDeps{Tokens: tm}

	mux := http.NewServeMux()
	mux.Handle("POST /equipment", mw.RequireAuth(authDeps, http.HandlerFunc(h.Create)))
	mux.Handle("GET /equipment", mw.RequireAuth(authDeps, http.HandlerFunc(h.List)))

	return repo, cache, mw.WithRequestID(mux), bearer
}

func doReq(h http.Handler, method, target, bearer, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCreateThenListEndToEnd(t *testing.T) {
	_, _, h, bearer := setup(t)

	rr := doReq(h, http.MethodPost, "/equipment", bearer,
		`{"name":"Hammer","category":"Tools","price":25.5,"supplier_id":"12345"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("POST: expected 201, got %d (%s)", rr.Code, rr.Body.String())
	}
	var created struct {
		Message   string           `json:"message"`
		Equipment domain.Equipment `json:"equipment"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("POST: bad body: %v", err)
	}
	if created.Equipment.ID == uuid.Nil {
		t.Fatalf("POST: record echoed without assigned id")
	}
	if created.Equipment.Name != "Hammer" || created.Equipment.Price != 25.5 {
		t.Fatalf("POST: record mismatch: %+v", created.Equipment)
	}
	if !created.Equipment.Availability {
		t.Fatalf("POST: availability must default to true")
	}

	rr = doReq(h, http.MethodGet, "/equipment?category=Tools&page=1&limit=10", bearer, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET: expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}
	var page domain.EquipmentPage
	if err := json.Unmarshal(rr.Body.Bytes(), &page); err != nil {
		t.Fatalf("GET: bad body: %v", err)
	}
	if page.Total < 1 {
		t.Fatalf("GET: total = %d, want >= 1", page.Total)
	}
	found := false
	for _, e := range page.Equipments {
		if e.ID == created.Equipment.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("GET: created record missing from equipments")
	}
}

func TestCreateMissingPriceReturns400(t *testing.T) {
	repo, cache, h, bearer := setup(t)

	rr := doReq(h, http.MethodPost, "/equipment", bearer,
		`{"name":"Hammer","category":"Tools","supplier_id":"12345"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	// ни вставки, ни инвалидации
	if repo.createCalls != 0 {
		t.Fatalf("store insert performed on invalid input")
	}
	if cache.delPrefixes != 0 {
		t.Fatalf("cache invalidation performed on invalid input")
	}
}

func TestCreateBadJSONReturns400(t *testing.T) {
	_, _, h, bearer := setup(t)

	rr := doReq(h, http.MethodPost, "/equipment", bearer, `{"name":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListWithoutTokenReturns401(t *testing.T) {
	_, _, h, _ := setup(t)

	rr := doReq(h, http.MethodGet, "/equipment", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestListWithInvalidTokenReturns400(t *testing.T) {
	_, _, h, _ := setup(t)

	rr := doReq(h, http.MethodGet, "/equipment", "not-a-jwt", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListRepeatIsServedFromCache(t *testing.T) {
	repo, _, h, bearer := setup(t)

	rr := doReq(h, http.MethodPost, "/equipment", bearer,
		`{"name":"Hammer","category":"Tools","price":25.5,"supplier_id":"12345"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("POST: %d", rr.Code)
	}

	first := doReq(h, http.MethodGet, "/equipment?category=Tools", bearer, "")
	second := doReq(h, http.MethodGet, "/equipment?category=Tools", bearer, "")
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("GET: %d / %d", first.Code, second.Code)
	}
	if repo.listCalls != 1 {
		t.Fatalf("repeat within TTL hit the store: listCalls=%d", repo.listCalls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("cached response differs byte-wise:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}

func TestListMalformedPaginationFallsBack(t *testing.T) {
	_, _, h, bearer := setup(t)

	rr := doReq(h, http.MethodGet, "/equipment?page=abc&limit=-5", bearer, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on malformed pagination, got %d", rr.Code)
	}
	var page domain.EquipmentPage
	if err := json.Unmarshal(rr.Body.Bytes(), &page); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if page.Page != domain.DefaultPage || page.Limit != domain.DefaultLimit {
		t.Fatalf("defaults not applied: page=%d limit=%d", page.Page, page.Limit)
	}
	if page.Equipments == nil {
		t.Fatalf("equipments must be [], not null")
	}
}

func TestParseListQuery(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		check func(t *testing.T, q domain.ListQuery)
	}{
		{
			name: "defaults",
			raw:  "",
			check: func(t *testing.T, q domain.ListQuery) {
				if q.Page != 1 || q.Limit != 10 {
					t.Fatalf("page=%d limit=%d", q.Page, q.Limit)
				}
				if q.Category != "" || q.SupplierID != "" || q.MinPrice != nil || q.MaxPrice != nil {
					t.Fatalf("filters must be absent: %+v", q)
				}
			},
		},
		{
			name: "full set",
			raw:  "category=Tools&supplier_id=12345&minPrice=10.5&maxPrice=100&page=2&limit=20",
			check: func(t *testing.T, q domain.ListQuery) {
				if q.Category != "Tools" || q.SupplierID != "12345" {
					t.Fatalf("%+v", q)
				}
				if q.MinPrice == nil || *q.MinPrice != 10.5 || q.MaxPrice == nil || *q.MaxPrice != 100 {
					t.Fatalf("prices: %+v", q)
				}
				if q.Page != 2 || q.Limit != 20 {
					t.Fatalf("page=%d limit=%d", q.Page, q.Limit)
				}
			},
		},
		{
			name: "malformed numbers fall back",
			raw:  "minPrice=abc&maxPrice=&page=0&limit=x",
			check: func(t *testing.T, q domain.ListQuery) {
				if q.MinPrice != nil || q.MaxPrice != nil {
					t.Fatalf("broken price bounds must be treated as absent: %+v", q)
				}
				if q.Page != 1 || q.Limit != 10 {
					t.Fatalf("page=%d limit=%d", q.Page, q.Limit)
				}
			},
		},
		{
			name: "explicit zero min price is kept",
			raw:  "minPrice=0",
			check: func(t *testing.T, q domain.ListQuery) {
				if q.MinPrice == nil || *q.MinPrice != 0 {
					t.Fatalf("minPrice=0 lost: %+v", q)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.raw)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			tc.check(t, parseListQuery(values))
		})
	}
}
