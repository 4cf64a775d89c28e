package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/iskedyul/backend/internal/cache"
	"github.com/iskedyul/backend/internal/config"
	"github.com/iskedyul/backend/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel    // 为 nil 时不支持分享课表
	gridCache   *cache.GridCache // 为 nil 时每次都重新计算网格

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, gridCache *cache.GridCache) (*Handler, error) {
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
		gridCache:   gridCache,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 时间段与具体课表无关
	h.Mux.Get("/time-ranges", h.GetTimeRanges)

	h.Mux.Route("/timetables", func(r chi.Router) {
		r.Get("/", h.GetAllTimetables)
		r.Post("/", h.CreateTimetable)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.timetable)
			r.Get("/", h.GetTimetable)
			r.Patch("/", h.UpdateTimetable)
			r.Delete("/", h.DeleteTimetable)

			// 网格相关
			r.Get("/rows", h.GetTimetableRows)
			r.Get("/classification", h.GetTimetableClassification)
			r.Get("/export", h.ExportTimetable)
			r.Post("/share", h.ShareTimetable)

			r.Route("/blocks", func(r chi.Router) {
				r.Get("/", h.GetTimetableBlocks)
				r.Post("/", h.CreateBlock)
				r.Route("/{blockID}", func(r chi.Router) {
					r.Use(h.block)
					r.Get("/", h.GetBlock)
					r.Patch("/", h.UpdateBlock)
					r.Delete("/", h.DeleteBlock)
				})
			})
		})
	})
}
