package transferHandler

import (
	transferService "VoiceTransfer/internal/api/transfer/service"
	"VoiceTransfer/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type TransferHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	transferService transferService.ITransferService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ts transferService.ITransferService,
) *TransferHandler {
	return &TransferHandler{
		log:             log,
		validator:       validate,
		middleware:      middleware,
		transferService: ts,
	}
}

func (h *TransferHandler) Start(srv fiber.Router) {
	transfer := srv.Group("/transfer")

	transfer.Use(h.middleware.NewRateLimiter)

	// Voice command processing
	transfer.Post("/commands", h.ProcessCommand)

	// Direct form submission
	transfer.Post("/submissions", h.SubmitTransfer)

	// Session command history
	transfer.Get("/sessions/:session_id/history", h.GetHistory)

	// Spoken feedback audio
	transfer.Get("/audio/:audio_id", h.GetAudio)
}
