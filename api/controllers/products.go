package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-admin/api/responses"
	"github.com/angelmondragon/storefront-admin/api/validators"
	"github.com/angelmondragon/storefront-admin/internal/products"
	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
	"github.com/angelmondragon/storefront-admin/pkg/logger"
)

func productServiceUnavailable(svc products.Service, w http.ResponseWriter, r *http.Request, logg *logger.Logger) bool {
	if svc != nil {
		return false
	}
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
	return true
}

// ProductList returns the full catalog.
func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if productServiceUnavailable(svc, w, r, logg) {
			return
		}
		rows, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func ProductGet(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if productServiceUnavailable(svc, w, r, logg) {
			return
		}
		id, ok := pathID(w, r, logg, "productId")
		if !ok {
			return
		}
		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if productServiceUnavailable(svc, w, r, logg) {
			return
		}
		var req products.CreateProductInput
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.CreateProduct(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductUpdate takes the changed fields as a flat JSON object.
func ProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if productServiceUnavailable(svc, w, r, logg) {
			return
		}
		id, ok := pathID(w, r, logg, "productId")
		if !ok {
			return
		}
		updates, err := validators.DecodeJSONObject(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.UpdateProduct(r.Context(), id, updates)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if productServiceUnavailable(svc, w, r, logg) {
			return
		}
		id, ok := pathID(w, r, logg, "productId")
		if !ok {
			return
		}
		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"success": true})
	}
}
