package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/storefront-admin/internal/products"
	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
)

type stubProductService struct {
	listFn   func(ctx context.Context) ([]models.Product, error)
	getFn    func(ctx context.Context, id string) (*models.Product, error)
	createFn func(ctx context.Context, input products.CreateProductInput) (*models.Product, error)
	updateFn func(ctx context.Context, id string, updates map[string]any) (*models.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s stubProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.listFn(ctx)
}

func (s stubProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.getFn(ctx, id)
}

func (s stubProductService) CreateProduct(ctx context.Context, input products.CreateProductInput) (*models.Product, error) {
	return s.createFn(ctx, input)
}

func (s stubProductService) UpdateProduct(ctx context.Context, id string, updates map[string]any) (*models.Product, error) {
	return s.updateFn(ctx, id, updates)
}

func (s stubProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestProductList(t *testing.T) {
	svc := stubProductService{listFn: func(context.Context) ([]models.Product, error) {
		return []models.Product{{ID: "p1", Name: "Áo"}, {ID: "p2", Name: "Quần"}}, nil
	}}

	resp := httptest.NewRecorder()
	ProductList(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data []models.Product `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) != 2 || envelope.Data[1].ID != "p2" {
		t.Fatalf("unexpected products %+v", envelope.Data)
	}
}

func TestProductGetNotFound(t *testing.T) {
	svc := stubProductService{getFn: func(_ context.Context, id string) (*models.Product, error) {
		if id != "missing" {
			t.Fatalf("unexpected id %q", id)
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}}

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/missing", nil), "productId", "missing")
	resp := httptest.NewRecorder()
	ProductGet(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if code := decodeErrorCode(t, resp); code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestProductCreate(t *testing.T) {
	var got products.CreateProductInput
	svc := stubProductService{createFn: func(_ context.Context, input products.CreateProductInput) (*models.Product, error) {
		got = input
		return &models.Product{ID: "new", Name: input.Name}, nil
	}}

	body := `{"name":"Áo thun","price":120000,"originalPrice":150000,"stock":10}`
	resp := httptest.NewRecorder()
	ProductCreate(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body)))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if got.Name != "Áo thun" || got.OriginalPrice == nil || *got.OriginalPrice != 150000 || got.Stock == nil || *got.Stock != 10 {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestProductCreateRejectsInvalidBody(t *testing.T) {
	svc := stubProductService{createFn: func(context.Context, products.CreateProductInput) (*models.Product, error) {
		t.Fatal("service should not be called")
		return nil, nil
	}}

	for name, body := range map[string]string{
		"missing name":   `{"price":10}`,
		"negative price": `{"name":"x","price":-1}`,
		"negative stock": `{"name":"x","stock":-3}`,
		"unknown field":  `{"name":"x","featured":true}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp := httptest.NewRecorder()
			ProductCreate(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body)))
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d", resp.Code)
			}
			if code := decodeErrorCode(t, resp); code != string(pkgerrors.CodeValidation) {
				t.Fatalf("unexpected code %s", code)
			}
		})
	}
}

func TestProductUpdatePassesFlatBody(t *testing.T) {
	svc := stubProductService{updateFn: func(_ context.Context, id string, updates map[string]any) (*models.Product, error) {
		if id != "p1" {
			t.Fatalf("unexpected id %q", id)
		}
		if updates["soldCount"] != 3.0 || updates["name"] != "Mới" {
			t.Fatalf("unexpected updates %v", updates)
		}
		return &models.Product{ID: id, Name: "Mới"}, nil
	}}

	req := httptest.NewRequest(http.MethodPut, "/api/products/p1", strings.NewReader(`{"name":"Mới","soldCount":3}`))
	resp := httptest.NewRecorder()
	ProductUpdate(svc, nil).ServeHTTP(resp, withURLParam(req, "productId", "p1"))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestProductDelete(t *testing.T) {
	called := false
	svc := stubProductService{deleteFn: func(_ context.Context, id string) error {
		called = id == "p1"
		return nil
	}}

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/products/p1", nil), "productId", "p1")
	resp := httptest.NewRecorder()
	ProductDelete(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK || !called {
		t.Fatalf("expected delete of p1, got %d called=%v", resp.Code, called)
	}
	if !strings.Contains(resp.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestProductHandlersWithoutService(t *testing.T) {
	resp := httptest.NewRecorder()
	ProductList(nil, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
