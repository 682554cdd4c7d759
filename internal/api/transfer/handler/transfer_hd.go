package transferHandler

import (
	"strings"
	"time"

	"VoiceTransfer/internal/api/transfer"
	contextPkg "VoiceTransfer/pkg/context"
	"VoiceTransfer/pkg/handlerUtil"
	"VoiceTransfer/pkg/log"
	"VoiceTransfer/pkg/response"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *TransferHandler) ProcessCommand(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing voice command request")

	if !strings.Contains(ctx.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return errHandler.Handle(ctx, requestID, transfer.ErrInvalidContentType, ctx.Path(), "process_command")
	}

	var req transfer.ProcessCommandRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	req.ClientID = ctx.IP()
	c = contextPkg.WithSessionID(c, req.SessionID)

	result, err := h.transferService.ProcessCommand(c, req)
	if err != nil {
		// Failure paths still carry spoken feedback; serve the result body
		// with the error's status so the client can voice it.
		if result != nil {
			return ctx.Status(response.CodeOf(err, fiber.StatusInternalServerError)).JSON(result)
		}
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_command")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *TransferHandler) SubmitTransfer(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing transfer submission request")

	if !strings.Contains(ctx.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return errHandler.Handle(ctx, requestID, transfer.ErrInvalidContentType, ctx.Path(), "submit_transfer")
	}

	var req transfer.SubmitTransferRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	resp, err := h.transferService.SubmitTransfer(c, req.TransferFormData)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "submit_transfer")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
	}
}

func (h *TransferHandler) GetHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Params("session_id")

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"path":       ctx.Path(),
	}).Debug("Processing get history request")

	history, err := h.transferService.GetHistory(c, sessionID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_history")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, history)
	}
}

func (h *TransferHandler) GetAudio(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	audioID := ctx.Params("audio_id")

	data, err := h.transferService.GetAudio(c, audioID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_audio")
	}

	ctx.Set(fiber.HeaderContentType, "audio/mpeg")
	return ctx.Status(fiber.StatusOK).Send(data)
}
