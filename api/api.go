// Package api exposes the quest command surface over HTTP for the chat
// dispatcher.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/divebot/divequest/api/handler"
	"github.com/divebot/divequest/config"
	"github.com/divebot/divequest/notify"
	"github.com/divebot/divequest/quest"
)

// Server wires the quest service and the relay sender into a gin router.
type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	service   *quest.Service
	sender    notify.Sender
}

// New creates a new API server.
func New(cfg *config.Config, service *quest.Service, sender notify.Sender, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
		service:   service,
		sender:    sender,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	h := handler.New(s.service, s.sender)

	s.ginEngine.GET("/healthz", h.Health)

	api := s.ginEngine.Group("/api")
	api.POST("/quests/assign", h.AssignQuest)
	api.POST("/quests/complete", h.CompleteQuest)
	api.POST("/quests/abandon", h.AbandonQuest)
	api.GET("/users/:username/stats", h.UserStats)
	api.GET("/leaderboard", h.Leaderboard)
	api.POST("/team-quests/assign", h.AssignTeamQuest)
	api.POST("/team-quests/:id/complete", h.CompleteTeamQuest)
	api.GET("/team-quests", h.ListTeamQuests)
	api.POST("/dm", h.DirectMessage)
	api.POST("/dm/broadcast", h.Broadcast)
	api.GET("/help", h.Help)
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}

// Handler returns the configured router, used by tests.
func (s *Server) Handler() *gin.Engine {
	return s.ginEngine
}
