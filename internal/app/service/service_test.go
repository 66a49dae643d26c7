package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/lampara23/dise-o-web/internal/app/dto"
	"github.com/lampara23/dise-o-web/internal/domain"
	"github.com/lampara23/dise-o-web/internal/infrastructure/repository/memory"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

var errStoreDown = errors.New("server selection timeout")

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ProductEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.ProductEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

// brokenRepo fails every call the way an unreachable store would.
type brokenRepo struct{}

func (brokenRepo) FindAll(context.Context, domain.ProductFilter) ([]*domain.Product, error) {
	return nil, errStoreDown
}
func (brokenRepo) FindByID(context.Context, string) (*domain.Product, error) { return nil, errStoreDown }
func (brokenRepo) Create(context.Context, domain.Fields) (*domain.Product, error) {
	return nil, errStoreDown
}
func (brokenRepo) Update(context.Context, string, domain.Fields) (*domain.Product, error) {
	return nil, errStoreDown
}
func (brokenRepo) Delete(context.Context, string) error { return errStoreDown }
func (brokenRepo) Count(context.Context) (int64, error) { return 0, errStoreDown }
func (brokenRepo) InsertMany(context.Context, []domain.Product) error { return errStoreDown }

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newTestProductService(t *testing.T, repo domain.ProductRepository) (*ProductService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	svc := NewProductService(repo, pub,
		tracenoop.NewTracerProvider().Tracer("test"),
		metricnoop.NewMeterProvider().Meter("test"),
		discardLogger(),
	)
	return svc, pub
}

func newMemoryRepo() *memory.ProductRepository {
	return memory.NewProductRepository(tracenoop.NewTracerProvider().Tracer("test"), discardLogger())
}

func seeded(t *testing.T) (*ProductService, *memory.ProductRepository, *recordingPublisher) {
	t.Helper()
	repo := newMemoryRepo()
	svc, pub := newTestProductService(t, repo)
	if _, err := svc.SeedProducts(context.Background()); err != nil {
		t.Fatalf("SeedProducts failed: %v", err)
	}
	return svc, repo, pub
}

func names(products []*dto.ProductResponse) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i], _ = p.Fields[domain.FieldName].(string)
	}
	return out
}

func TestSeedProducts_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	svc, _ := newTestProductService(t, repo)

	inserted, err := svc.SeedProducts(ctx)
	if err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	if inserted != 3 {
		t.Errorf("expected 3 inserted, got %d", inserted)
	}

	first, _ := svc.ListProducts(ctx, domain.ProductFilter{})

	inserted, err = svc.SeedProducts(ctx)
	if err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if inserted != 0 {
		t.Errorf("expected no inserts on non-empty store, got %d", inserted)
	}

	second, _ := svc.ListProducts(ctx, domain.ProductFilter{})
	if len(first) != len(second) {
		t.Fatalf("seeding twice changed the catalog: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("record %d changed: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestSeedProducts_SkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	svc, _ := newTestProductService(t, repo)

	if _, err := svc.CreateProduct(ctx, domain.Fields{"name": "Papas"}); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if n, _ := svc.SeedProducts(ctx); n != 0 {
		t.Errorf("expected no seed on non-empty store, got %d", n)
	}
	if c, _ := repo.Count(ctx); c != 1 {
		t.Errorf("expected 1 product, got %d", c)
	}
}

func TestSeedProducts_PropagatesStoreErrors(t *testing.T) {
	svc, _ := newTestProductService(t, brokenRepo{})
	if _, err := svc.SeedProducts(context.Background()); !errors.Is(err, errStoreDown) {
		t.Errorf("expected store error, got %v", err)
	}
}

func TestListProducts_Filters(t *testing.T) {
	svc, _, _ := seeded(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter domain.ProductFilter
		want   []string
	}{
		{"no filter", domain.ProductFilter{}, []string{"Completo Italiano", "Hot Dog Tradicional", "Combo Victory Royale 🏆"}},
		{"category all", domain.ProductFilter{Category: "all"}, []string{"Completo Italiano", "Hot Dog Tradicional", "Combo Victory Royale 🏆"}},
		{"category", domain.ProductFilter{Category: "hotdogs"}, []string{"Hot Dog Tradicional"}},
		{"unknown category", domain.ProductFilter{Category: "pizzas"}, []string{}},
		// "hot" is in one name and in the combo's description ("2 Hot Dogs premium").
		{"search hot", domain.ProductFilter{Search: "hot"}, []string{"Hot Dog Tradicional", "Combo Victory Royale 🏆"}},
		{"search description only", domain.ProductFilter{Search: "PALTA"}, []string{"Completo Italiano"}},
		{"search and category", domain.ProductFilter{Category: "combos", Search: "hot"}, []string{"Combo Victory Royale 🏆"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListProducts(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListProducts failed: %v", err)
			}
			gotNames := names(got)
			if len(gotNames) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, gotNames)
			}
			for i := range tt.want {
				if gotNames[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, gotNames)
				}
			}
		})
	}
}

func TestListProducts_StoreError(t *testing.T) {
	svc, _ := newTestProductService(t, brokenRepo{})
	if _, err := svc.ListProducts(context.Background(), domain.ProductFilter{}); !errors.Is(err, errStoreDown) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestCreateProduct_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestProductService(t, newMemoryRepo())

	created, err := svc.CreateProduct(ctx, domain.Fields{
		"name": "Papas Fritas", "price": int64(1990), "stock": int64(30),
		"description": "Papas crujientes", "category": "acompañamientos", "rarity": "rare", "image": "🍟",
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected string id")
	}

	listed, err := svc.ListProducts(ctx, domain.ProductFilter{Search: "papas"})
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 product, got %d", len(listed))
	}
	got := listed[0]
	if got.ID != created.ID {
		t.Errorf("expected id %s, got %s", created.ID, got.ID)
	}
	want := map[string]any{
		"name": "Papas Fritas", "price": int64(1990), "stock": int64(30),
		"description": "Papas crujientes", "category": "acompañamientos", "rarity": "rare", "image": "🍟",
	}
	if len(got.Fields) != len(want) {
		t.Errorf("expected %d fields, got %v", len(want), got.Fields)
	}
	for k, v := range want {
		if got.Fields[k] != v {
			t.Errorf("field %s: expected %v, got %v", k, v, got.Fields[k])
		}
	}
}

func TestCreateProduct_OffTypeFields(t *testing.T) {
	svc, _ := newTestProductService(t, newMemoryRepo())
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, domain.Fields{"name": "Papas", "price": "1990", "stock": 2.5})
	if err != nil {
		t.Fatalf("CreateProduct with off-type fields failed: %v", err)
	}
	if created.Fields["price"] != "1990" || created.Fields["stock"] != 2.5 {
		t.Errorf("values must be returned as stored: %v", created.Fields)
	}

	if _, err := svc.UpdateProduct(ctx, created.ID, domain.Fields{"name": int64(12)}); err != nil {
		t.Fatalf("UpdateProduct with off-type fields failed: %v", err)
	}
	listed, err := svc.ListProducts(ctx, domain.ProductFilter{})
	if err != nil || len(listed) != 1 {
		t.Fatalf("ListProducts = %d, %v", len(listed), err)
	}
	if listed[0].Fields["name"] != int64(12) {
		t.Errorf("expected stored name 12, got %v", listed[0].Fields["name"])
	}
}

func TestUpdateProduct(t *testing.T) {
	svc, _, pub := seeded(t)
	ctx := context.Background()

	products, _ := svc.ListProducts(ctx, domain.ProductFilter{Category: "combos"})
	id := products[0].ID

	updated, err := svc.UpdateProduct(ctx, id, domain.Fields{"stock": int64(24)})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if updated.Fields["stock"] != int64(24) || updated.Fields["name"] != "Combo Victory Royale 🏆" {
		t.Errorf("unexpected update result %+v", updated)
	}

	// Same values again: the product exists, so this is not a miss.
	if _, err := svc.UpdateProduct(ctx, id, domain.Fields{"stock": int64(24)}); err != nil {
		t.Errorf("no-op update must succeed, got %v", err)
	}

	if len(pub.events) != 2 || pub.events[0].Type != domain.EventProductUpdated {
		t.Errorf("expected two update events, got %+v", pub.events)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc, _, pub := seeded(t)
	_, err := svc.UpdateProduct(context.Background(), "does-not-exist", domain.Fields{"stock": int64(1)})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("no event expected for a miss, got %+v", pub.events)
	}
}

func TestDeleteProduct(t *testing.T) {
	svc, repo, pub := seeded(t)
	ctx := context.Background()

	products, _ := svc.ListProducts(ctx, domain.ProductFilter{Category: "completos"})
	if err := svc.DeleteProduct(ctx, products[0].ID); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}
	if n, _ := repo.Count(ctx); n != 2 {
		t.Errorf("expected 2 products left, got %d", n)
	}
	if err := svc.DeleteProduct(ctx, products[0].ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound on second delete, got %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].Type != domain.EventProductDeleted || pub.events[0].Product != nil {
		t.Errorf("expected one delete event, got %+v", pub.events)
	}
}

func TestHealthService(t *testing.T) {
	_, repo, _ := seeded(t)
	health := NewHealthService(repo, tracenoop.NewTracerProvider().Tracer("test"), discardLogger())

	got := health.Check(context.Background())
	if got.Status != dto.HealthStatusHealthy {
		t.Errorf("expected healthy, got %s", got.Status)
	}
	if got.TotalProducts == nil || *got.TotalProducts != 3 {
		t.Errorf("expected 3 products, got %v", got.TotalProducts)
	}

	broken := NewHealthService(brokenRepo{}, tracenoop.NewTracerProvider().Tracer("test"), discardLogger())
	got = broken.Check(context.Background())
	if got.Status != dto.HealthStatusError || got.TotalProducts != nil {
		t.Errorf("expected error status without total, got %+v", got)
	}
}

func TestUserService(t *testing.T) {
	repo := memory.NewUserRepository(map[string]any{"email": "cliente@doggys.cl"})
	svc := NewUserService(repo, tracenoop.NewTracerProvider().Tracer("test"), discardLogger())

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 1 || users[0].ID == "" || users[0].Fields["email"] != "cliente@doggys.cl" {
		t.Errorf("unexpected users %+v", users)
	}
}
