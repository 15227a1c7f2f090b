package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-admin/api/middleware"
	"github.com/angelmondragon/storefront-admin/api/responses"
	"github.com/angelmondragon/storefront-admin/api/validators"
	"github.com/angelmondragon/storefront-admin/internal/admin"
	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
	"github.com/angelmondragon/storefront-admin/pkg/logger"
)

type updateProductRequest struct {
	Updates map[string]any `json:"updates" validate:"required"`
	ActorID *string        `json:"actorId,omitempty" validate:"omitempty,max=128"`
}

type deleteProductRequest struct {
	ActorID *string `json:"actorId,omitempty" validate:"omitempty,max=128"`
}

type updateOrderStatusRequest struct {
	Status  string  `json:"status" validate:"required,max=64"`
	ActorID *string `json:"actorId,omitempty" validate:"omitempty,max=128"`
	Note    *string `json:"note,omitempty" validate:"omitempty,max=2000"`
}

// AdminOverview returns the composed dashboard payload.
func AdminOverview(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}
		overview, err := svc.Overview(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}

// AdminUpdateProduct applies a partial product update.
func AdminUpdateProduct(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}
		id, ok := pathID(w, r, logg, "productId")
		if !ok {
			return
		}

		var req updateProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, req.Updates, actorID(r, req.ActorID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if product == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct deletes a product. The body is optional.
func AdminDeleteProduct(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}
		id, ok := pathID(w, r, logg, "productId")
		if !ok {
			return
		}

		var req deleteProductRequest
		if err := validators.DecodeOptionalJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id, actorID(r, req.ActorID)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"success": true})
	}
}

// AdminUpdateOrderStatus moves an order to a new status.
func AdminUpdateOrderStatus(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}
		id, ok := pathID(w, r, logg, "orderId")
		if !ok {
			return
		}

		var req updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateOrderStatus(r.Context(), id, req.Status, actorID(r, req.ActorID), deref(req.Note))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if order == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func pathID(w http.ResponseWriter, r *http.Request, logg *logger.Logger, param string) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, param))
	if id == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, param+" is required"))
		return "", false
	}
	return id, true
}

// actorID prefers the actor the mutation middleware already resolved and falls
// back to the decoded body when no limiter ran.
func actorID(r *http.Request, fromBody *string) string {
	if actor := middleware.ActorIDFromContext(r.Context()); actor != "" {
		return actor
	}
	return strings.TrimSpace(deref(fromBody))
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
