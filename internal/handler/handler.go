package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/mercato-dev/business-hours/backend/internal/config"
	"github.com/mercato-dev/business-hours/backend/internal/domain"
	"github.com/mercato-dev/business-hours/backend/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		// 用户管理只允许平台管理员操作
		r.Route("/users", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/businesses", func(r chi.Router) {
			r.With(h.myInfo).With(h.RequiredRole([]domain.Role{domain.RoleMerchant, domain.RoleAdmin})).Post("/", h.CreateBusiness)
			r.Get("/", h.GetAllBusinesses) // 商户列表对所有登录用户可见
			r.Get("/slug/{slug}", h.GetBusinessBySlug)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.businessInfo)
				r.Get("/", h.GetBusiness)
				r.With(h.requireBusinessOwner).Patch("/", h.UpdateBusiness)
				r.With(h.requireBusinessOwner).Delete("/", h.DeleteBusiness)

				r.Route("/schedule", func(r chi.Router) {
					r.Get("/", h.GetBusinessSchedule)
					r.Get("/availability", h.QueryAvailability)
					r.Get("/next-opening", h.QueryNextOpening)

					r.Group(func(r chi.Router) {
						r.Use(h.requireBusinessOwner)
						r.Put("/", h.ReplaceBusinessSchedule)
						r.Post("/preset", h.ApplySchedulePreset)
						r.Patch("/days/{day}", h.UpdateBusinessDay)
						r.Post("/special-dates", h.AddSpecialDate)
						r.Delete("/special-dates/{date}", h.RemoveSpecialDate)
					})
				})
			})
		})
	})
}
