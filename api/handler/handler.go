package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/divebot/divequest/notify"
	"github.com/divebot/divequest/quest"
)

// Handler serves the quest command endpoints. Domain outcomes (rejections,
// not-found, empty catalogs) are 200 responses carrying the user-facing text;
// only malformed requests and store I/O faults get error status codes.
type Handler struct {
	service *quest.Service
	sender  notify.Sender
}

// New creates a new Handler.
func New(service *quest.Service, sender notify.Sender) *Handler {
	return &Handler{
		service: service,
		sender:  sender,
	}
}

type assignRequest struct {
	Username   string `json:"username" binding:"required"`
	Difficulty *int   `json:"difficulty"`
}

type userRequest struct {
	Username string `json:"username" binding:"required"`
}

type teamAssignRequest struct {
	Players    []string `json:"players"`
	Difficulty *int     `json:"difficulty"`
}

type dmRequest struct {
	Username string `json:"username" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

type broadcastRequest struct {
	Usernames []string `json:"usernames" binding:"required,min=1"`
	Text      string   `json:"text" binding:"required"`
}

// difficulty defaults to 1 when the dispatcher omits it.
func difficultyOrDefault(d *int) int {
	if d == nil {
		return 1
	}
	return *d
}

func (h *Handler) respond(c *gin.Context, text string, err error) {
	if err != nil {
		log.Error("quest operation failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}

// Health is the liveness endpoint.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AssignQuest assigns a random solo quest to the user.
func (h *Handler) AssignQuest(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	text, err := h.service.AssignQuest(req.Username, difficultyOrDefault(req.Difficulty))
	h.respond(c, text, err)
}

// CompleteQuest completes the user's active quest and awards points.
func (h *Handler) CompleteQuest(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	text, err := h.service.CompleteQuest(req.Username)
	h.respond(c, text, err)
}

// AbandonQuest abandons the user's active quest without awarding points.
func (h *Handler) AbandonQuest(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	text, err := h.service.AbandonQuest(req.Username)
	h.respond(c, text, err)
}

// UserStats renders the score of a single user.
func (h *Handler) UserStats(c *gin.Context) {
	text, err := h.service.UserStats(c.Param("username"))
	h.respond(c, text, err)
}

// Leaderboard renders the ranked list of all users.
func (h *Handler) Leaderboard(c *gin.Context) {
	text, err := h.service.Leaderboard()
	h.respond(c, text, err)
}

// AssignTeamQuest creates a team quest for the mentioned players.
func (h *Handler) AssignTeamQuest(c *gin.Context) {
	var req teamAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	text, err := h.service.AssignTeamQuest(req.Players, difficultyOrDefault(req.Difficulty))
	h.respond(c, text, err)
}

// CompleteTeamQuest completes an active team quest by ID.
func (h *Handler) CompleteTeamQuest(c *gin.Context) {
	text, err := h.service.CompleteTeamQuest(c.Param("id"))
	h.respond(c, text, err)
}

// ListTeamQuests renders all active team quests.
func (h *Handler) ListTeamQuests(c *gin.Context) {
	text, err := h.service.ListActiveTeamQuests()
	h.respond(c, text, err)
}

// DirectMessage delivers text to a user through the relay. A recipient whose
// privacy settings reject DMs is a delivery failure, not a server fault.
func (h *Handler) DirectMessage(c *gin.Context) {
	var req dmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.sender.SendDirectMessage(c.Request.Context(), req.Username, req.Text)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"delivered": true})
	case errors.Is(err, notify.ErrForbidden), errors.Is(err, notify.ErrDisabled):
		c.JSON(http.StatusOK, gin.H{
			"delivered": false,
			"text":      "Could not deliver the message to " + req.Username + ".",
		})
	default:
		log.Error("direct message delivery failed", "user", req.Username, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

// Broadcast delivers the same text to multiple users and reports per-recipient
// delivery counts. Rejected recipients never abort the batch.
func (h *Handler) Broadcast(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	delivered, failed := notify.Broadcast(c.Request.Context(), h.sender, req.Usernames, req.Text)
	c.JSON(http.StatusOK, gin.H{
		"delivered": delivered,
		"failed":    failed,
	})
}

// Help returns the command reference.
func (h *Handler) Help(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"text": quest.HelpText()})
}
