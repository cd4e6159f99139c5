package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mercato-dev/business-hours/backend/internal/domain"
	"github.com/mercato-dev/business-hours/backend/internal/utils"
)

func (h *Handler) GetAllBusinesses(w http.ResponseWriter, r *http.Request) {
	businesses, err := h.repository.GetAllBusinesses()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取商户列表成功", businesses)
}

func (h *Handler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Name     string `json:"name" validate:"required"`
		Timezone string `json:"timezone" validate:"omitempty,timezone"`
		OwnerID  *int64 `json:"ownerID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 默认店主是申请人自己，管理员可以代其他用户开店
	ownerID := myInfo.ID
	if req.OwnerID != nil {
		if myInfo.Role != domain.RoleAdmin {
			h.errorResponse(w, r, "只有管理员才能为其他用户创建商户")
			return
		}
		ownerID = *req.OwnerID
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = h.config.Business.DefaultTimezone
	}

	business := &domain.Business{
		Name:     req.Name,
		Slug:     utils.Slugify(req.Name),
		OwnerID:  ownerID,
		Timezone: timezone,
	}

	if err := h.repository.CreateBusiness(business); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "businesses_slug_key":
				h.errorResponse(w, r, "商户名称已被占用")
			case "businesses_owner_id_fkey":
				h.errorResponse(w, r, "店主不存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "商户创建成功", business)
}

func (h *Handler) GetBusinessBySlug(w http.ResponseWriter, r *http.Request) {
	business, err := h.repository.GetBusinessBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "商户不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取商户信息成功", business)
}

func (h *Handler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)
	h.successResponse(w, r, "获取商户信息成功", business)
}

func (h *Handler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     *string `json:"name"`
		Timezone *string `json:"timezone" validate:"omitempty,timezone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	business := r.Context().Value(BusinessCtx).(*domain.Business)

	if req.Name != nil {
		business.Name = *req.Name
		business.Slug = utils.Slugify(*req.Name)
	}
	if req.Timezone != nil {
		business.Timezone = *req.Timezone
	}

	if err := h.repository.UpdateBusiness(business); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "businesses_slug_key":
				h.errorResponse(w, r, "商户名称已被占用")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新商户信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新商户信息成功", business)
}

func (h *Handler) DeleteBusiness(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	if err := h.repository.DeleteBusiness(business.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除商户成功", nil)
}
