// Package server exposes the engine over HTTP: position analysis, move
// legality checks, a stored-position library and service counters.
package server

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"fastchess/internal/board"
	"fastchess/internal/library"
	"fastchess/internal/store"
)

var validate = validator.New()

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AnalysisRequest asks for the legal moves of a position.
type AnalysisRequest struct {
	FEN string `json:"fen" validate:"required"`
}

// AnalysisResponse carries the legal moves of the side to move.
type AnalysisResponse struct {
	FEN     string   `json:"fen"`
	Moves   []string `json:"moves"`
	InCheck bool     `json:"in_check"`
	Cached  bool     `json:"cached"`
}

// LegalityRequest asks whether a single move is legal in a position.
type LegalityRequest struct {
	FEN  string `json:"fen" validate:"required"`
	Move string `json:"move" validate:"required,min=4,max=5"`
}

// LegalityResponse answers a legality check.
type LegalityResponse struct {
	FEN   string `json:"fen"`
	Move  string `json:"move"`
	Legal bool   `json:"legal"`
}

// SavePositionRequest stores a named position in the library.
type SavePositionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	FEN  string `json:"fen" validate:"required"`
}

// Handler routes HTTP requests to the engine, cache and library.
type Handler struct {
	store *store.Store
	lib   *library.Library
}

// New builds the fiber app around the given stores.
func New(st *store.Store, lib *library.Library) *fiber.App {
	h := &Handler{store: st, lib: lib}

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	app.Get("/health", h.Health)

	api := app.Group("/api/v1")
	api.Post("/analysis", h.Analyze)
	api.Post("/legality", h.CheckLegality)
	api.Post("/positions", h.SavePosition)
	api.Get("/positions", h.ListPositions)
	api.Get("/positions/:id", h.GetPosition)
	api.Delete("/positions/:id", h.DeletePosition)
	api.Get("/stats", h.Stats)

	return app
}

// errorHandler provides consistent error responses.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		msg = e.Message
	}
	return c.Status(code).JSON(ErrorResponse{Error: msg})
}

// parseBody parses and validates a JSON request body into dst. A non-nil
// return describes what is wrong with the request; the handler answers 400.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	errs := validate.Struct(dst)
	if errs == nil {
		return nil
	}

	var details strings.Builder
	for _, err := range errs.(validator.ValidationErrors) {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch err.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", err.Field()))
		case "min", "max":
			details.WriteString(fmt.Sprintf("%s length must satisfy %s=%s", err.Field(), err.Tag(), err.Param()))
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", err.Field(), err.Tag()))
		}
	}
	return fmt.Errorf("validation failed: %s", details.String())
}

// badRequest answers a request rejected before reaching the engine.
func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid request",
		Details: err.Error(),
	})
}

// Health check endpoint.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// Analyze returns the legal moves of a position, cached per FEN.
func (h *Handler) Analyze(c *fiber.Ctx) error {
	var req AnalysisRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	pos, err := board.ParseFEN(req.FEN)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid FEN",
			Details: err.Error(),
		})
	}
	fen := pos.ToFEN()

	if cached, err := h.store.LoadAnalysis(fen); err == nil {
		h.bump(func(st *store.Stats) {
			st.AnalysesServed++
			st.CacheHits++
		})
		return c.JSON(AnalysisResponse{
			FEN:     cached.FEN,
			Moves:   cached.Moves,
			InCheck: cached.InCheck,
			Cached:  true,
		})
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("analysis cache read failed: %v", err)
	}

	legal := pos.LegalMoves()
	moves := make([]string, len(legal))
	for i, m := range legal {
		moves[i] = m.String()
	}
	inCheck := pos.InCheck()

	if err := h.store.SaveAnalysis(&store.Analysis{FEN: fen, Moves: moves, InCheck: inCheck}); err != nil {
		log.Printf("analysis cache write failed: %v", err)
	}
	h.bump(func(st *store.Stats) { st.AnalysesServed++ })

	return c.JSON(AnalysisResponse{FEN: fen, Moves: moves, InCheck: inCheck})
}

// CheckLegality answers whether a UCI move is legal in a position.
func (h *Handler) CheckLegality(c *fiber.Ctx) error {
	var req LegalityRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	pos, err := board.ParseFEN(req.FEN)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid FEN",
			Details: err.Error(),
		})
	}

	legal := false
	if m, err := board.ParseMove(req.Move, pos); err == nil {
		legal = pos.IsLegal(m)
	}
	// An unparsable move is simply not legal; the request itself is fine.

	h.bump(func(st *store.Stats) { st.LegalityChecks++ })

	return c.JSON(LegalityResponse{FEN: pos.ToFEN(), Move: req.Move, Legal: legal})
}

// SavePosition stores a named position in the library.
func (h *Handler) SavePosition(c *fiber.Ctx) error {
	var req SavePositionRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	entry, err := h.lib.Save(req.Name, req.FEN)
	if err != nil {
		if errors.Is(err, board.ErrFieldCount) || errors.Is(err, board.ErrPiecePlacement) ||
			errors.Is(err, board.ErrSideToMove) || errors.Is(err, board.ErrCastlingRights) ||
			errors.Is(err, board.ErrEnPassant) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid FEN",
				Details: err.Error(),
			})
		}
		return fiber.ErrInternalServerError
	}

	h.bump(func(st *store.Stats) { st.PositionsSaved++ })

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// ListPositions returns every stored position.
func (h *Handler) ListPositions(c *fiber.Ctx) error {
	entries, err := h.lib.List()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if entries == nil {
		entries = []library.Entry{}
	}
	return c.JSON(entries)
}

// GetPosition returns one stored position by id.
func (h *Handler) GetPosition(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isValidUUID(id) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid position ID format",
			Details: "position ID must be a valid UUID",
		})
	}

	entry, err := h.lib.Get(id)
	if errors.Is(err, library.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "position not found"})
	}
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(entry)
}

// DeletePosition removes one stored position by id.
func (h *Handler) DeletePosition(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isValidUUID(id) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid position ID format",
			Details: "position ID must be a valid UUID",
		})
	}

	err := h.lib.Delete(id)
	if errors.Is(err, library.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "position not found"})
	}
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats returns the service counters.
func (h *Handler) Stats(c *fiber.Ctx) error {
	stats, err := h.store.LoadStats()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(stats)
}

// bump updates counters without failing the request on storage trouble.
func (h *Handler) bump(fn func(*store.Stats)) {
	if err := h.store.Bump(fn); err != nil {
		log.Printf("stats update failed: %v", err)
	}
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
