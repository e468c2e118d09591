package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/lacomanda/comanda-backend/api/responses"
	"github.com/lacomanda/comanda-backend/api/validators"
	product "github.com/lacomanda/comanda-backend/internal/products"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
	"github.com/lacomanda/comanda-backend/pkg/logger"
)

type createOptionGroupRequest struct {
	Name          string `json:"name" validate:"required"`
	IsRequired    bool   `json:"is_required"`
	AllowMultiple bool   `json:"allow_multiple"`
	DisplayOrder  int    `json:"display_order" validate:"omitempty,min=0"`
}

type updateOptionGroupRequest struct {
	Name          *string `json:"name,omitempty"`
	IsRequired    *bool   `json:"is_required,omitempty"`
	AllowMultiple *bool   `json:"allow_multiple,omitempty"`
	DisplayOrder  *int    `json:"display_order,omitempty" validate:"omitempty,min=0"`
}

type createOptionRequest struct {
	Name            string          `json:"name" validate:"required"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
	DisplayOrder    int             `json:"display_order" validate:"omitempty,min=0"`
}

type updateOptionRequest struct {
	Name            *string          `json:"name,omitempty"`
	AdditionalPrice *decimal.Decimal `json:"additional_price,omitempty"`
	DisplayOrder    *int             `json:"display_order,omitempty" validate:"omitempty,min=0"`
}

// AdminCreateOptionGroup handles option group creation.
func AdminCreateOptionGroup(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var body createOptionGroupRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateOptionGroup(r.Context(), product.CreateOptionGroupInput{
			Name:          body.Name,
			IsRequired:    body.IsRequired,
			AllowMultiple: body.AllowMultiple,
			DisplayOrder:  body.DisplayOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AdminUpdateOptionGroup applies a partial update to an option group.
func AdminUpdateOptionGroup(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		groupID, err := pathUUID(r, "groupId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateOptionGroupRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateOptionGroup(r.Context(), groupID, product.UpdateOptionGroupInput{
			Name:          body.Name,
			IsRequired:    body.IsRequired,
			AllowMultiple: body.AllowMultiple,
			DisplayOrder:  body.DisplayOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// AdminDeleteOptionGroup removes an option group, its options, and its
// product links.
func AdminDeleteOptionGroup(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		groupID, err := pathUUID(r, "groupId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteOptionGroup(r.Context(), groupID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminGetOptionGroup fetches one option group with its options.
func AdminGetOptionGroup(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		groupID, err := pathUUID(r, "groupId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.GetOptionGroup(r.Context(), groupID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, found)
	}
}

// AdminListOptionGroups lists every option group.
func AdminListOptionGroups(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		groups, err := svc.ListOptionGroups(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, groups)
	}
}

// AdminCreateOption adds an option to a group.
func AdminCreateOption(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		groupID, err := pathUUID(r, "groupId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createOptionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateOption(r.Context(), groupID, product.CreateOptionInput{
			Name:            body.Name,
			AdditionalPrice: body.AdditionalPrice,
			DisplayOrder:    body.DisplayOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AdminUpdateOption applies a partial update to an option.
func AdminUpdateOption(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		optionID, err := pathUUID(r, "optionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateOptionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateOption(r.Context(), optionID, product.UpdateOptionInput{
			Name:            body.Name,
			AdditionalPrice: body.AdditionalPrice,
			DisplayOrder:    body.DisplayOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// AdminDeleteOption removes a single option.
func AdminDeleteOption(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		optionID, err := pathUUID(r, "optionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteOption(r.Context(), optionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
