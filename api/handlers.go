package api

import (
	"context"
	"errors"
	"net/http"

	"chess-opponent/engine"
	"chess-opponent/game"
	"chess-opponent/position"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// MoveChooser picks a move for a position; *engine.Policy implements it.
type MoveChooser interface {
	ChooseMove(ctx context.Context, pos *position.Position, tier engine.Tier) (engine.Result, error)
}

type MoveRequest struct {
	FEN        string `json:"fen" binding:"required"`
	Difficulty string `json:"difficulty"`
}

type MoveResponse struct {
	Move   string `json:"move"`
	SAN    string `json:"san"`
	FEN    string `json:"fen"`
	Status string `json:"status"`
	Source string `json:"source"`
	Score  *int   `json:"score,omitempty"`
}

// Handler serves move requests. Each request parses its own Position, so
// requests never share board state.
type Handler struct {
	chooser MoveChooser
	log     zerolog.Logger
}

func NewHandler(chooser MoveChooser, logger zerolog.Logger) *Handler {
	return &Handler{chooser: chooser, log: logger}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Move answers POST /api/chess/move with the engine's reply for the posted
// position. The difficulty defaults to medium.
func (h *Handler) Move(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = engine.Medium.String()
	}

	pos, err := position.Parse(req.FEN)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tier, err := engine.ParseTier(req.Difficulty)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record, err := game.NewRecord(pos.FEN())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.chooser.ChooseMove(c.Request.Context(), pos, tier)
	if errors.Is(err, engine.ErrNoMoveAvailable) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  err.Error(),
			"status": pos.Status().String(),
		})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("fen", req.FEN).Str("tier", tier.String()).Msg("choose move")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not choose a move"})
		return
	}

	san, err := record.SAN(res.Move.String())
	if err != nil {
		h.log.Error().Err(err).Str("move", res.Move.String()).Msg("render SAN")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render move"})
		return
	}

	pos.Apply(res.Move)
	resp := MoveResponse{
		Move:   res.Move.String(),
		SAN:    san,
		FEN:    pos.FEN(),
		Status: pos.Status().String(),
		Source: string(res.Source),
	}
	if res.Source == engine.SourceLocal {
		score := res.Score
		resp.Score = &score
	}
	c.JSON(http.StatusOK, resp)
}
