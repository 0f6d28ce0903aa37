package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"doc-collab-be/internal/apperrors"
	"doc-collab-be/internal/dto"
	"doc-collab-be/internal/pkg/logger"
	"doc-collab-be/internal/pkg/serverutils"
	"doc-collab-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Converse(ctx *fiber.Ctx) error
	GetSessions(ctx *fiber.Ctx) error
	GetSessionMessages(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.ChatService
	log         logger.ILogger
}

func NewChatController(chatService service.ChatService, log logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		log:         log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("converse", c.Converse)
	h.Get("sessions", c.GetSessions)
	h.Get("sessions/:id/messages", c.GetSessionMessages)
}

func (c *chatController) Converse(ctx *fiber.Ctx) error {
	var req dto.ConverseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if !req.Stream {
		res, err := c.chatService.Converse(ctx.Context(), &req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success converse", res))
	}

	return c.converseStream(ctx, &req)
}

// converseStream relays generation tokens over SSE. Headers go out before
// generation starts, so failures past that point are reported as an error
// frame instead of an HTTP status.
func (c *chatController) converseStream(ctx *fiber.Ctx, req *dto.ConverseRequest) error {
	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		// The fiber request context dies when the handler returns; stream
		// lifetime is governed by write failures, which mean the client
		// disconnected.
		streamCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		terminal, err := c.chatService.ConverseStream(streamCtx, req, func(chunk string) error {
			if err := writeFrame(w, dto.StreamChunk{Chunk: chunk}); err != nil {
				cancel()
				return err
			}
			return nil
		})
		if err != nil {
			c.log.Warn("chat.controller", "stream aborted", map[string]interface{}{
				"error": err.Error(),
			})
			_ = writeFrame(w, fiber.Map{"error": streamErrorMessage(err), "done": true})
			return
		}

		if err := writeFrame(w, terminal); err != nil {
			c.log.Warn("chat.controller", "failed to write terminal frame", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}))

	return nil
}

func writeFrame(w *bufio.Writer, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return w.Flush()
}

// streamErrorMessage keeps internal causes out of the wire format.
func streamErrorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "conversation turn failed"
}

func (c *chatController) GetSessions(ctx *fiber.Ctx) error {
	var req dto.GetSessionsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.GetSessions(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get sessions", res))
}

func (c *chatController) GetSessionMessages(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid session id")
	}

	res, err := c.chatService.GetSessionMessages(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session messages", res))
}
