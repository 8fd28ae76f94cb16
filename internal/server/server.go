package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/ca-facilities/custodial-command/internal/common"
	"github.com/ca-facilities/custodial-command/internal/export"
	"github.com/ca-facilities/custodial-command/internal/extract"
	"github.com/ca-facilities/custodial-command/internal/repository"
)

// Server wires the HTTP handlers to their repositories and collaborators.
type Server struct {
	inspections repository.InspectionRepository
	rooms       repository.RoomInspectionRepository
	notes       repository.CustodialNoteRepository
	feedback    repository.MonthlyFeedbackRepository
	exporter    *export.Service
	extractor   extract.TextExtractor
	sessions    SessionStore
	db          *repository.DB
	uploadDir   string
	logger      *slog.Logger
}

type Deps struct {
	Inspections repository.InspectionRepository
	Rooms       repository.RoomInspectionRepository
	Notes       repository.CustodialNoteRepository
	Feedback    repository.MonthlyFeedbackRepository
	Exporter    *export.Service
	Extractor   extract.TextExtractor
	Sessions    SessionStore
	DB          *repository.DB
	UploadDir   string
	Logger      *slog.Logger
}

func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		inspections: deps.Inspections,
		rooms:       deps.Rooms,
		notes:       deps.Notes,
		feedback:    deps.Feedback,
		exporter:    deps.Exporter,
		extractor:   deps.Extractor,
		sessions:    deps.Sessions,
		db:          deps.DB,
		uploadDir:   deps.UploadDir,
		logger:      logger,
	}
}

// Router builds the gin engine with all API routes registered.
func (s *Server) Router(cfg common.ServerConfig) *gin.Engine {
	if cfg.Environment != "development" && cfg.Environment != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(s.requestLogger())

	api := router.Group("/api")

	api.POST("/inspections", s.createInspection)
	api.GET("/inspections", s.listInspections)
	api.GET("/inspections/:id", s.getInspection)
	api.PATCH("/inspections/:id", s.updateInspection)
	api.PUT("/inspections/:id", s.updateInspection)
	api.DELETE("/inspections/:id", s.requireSession(), s.deleteInspection)
	api.GET("/inspections/:id/rooms", s.listInspectionRooms)
	api.POST("/inspections/:id/finalize", s.finalizeInspection)

	api.POST("/room-inspections", s.createRoomInspection)
	api.GET("/room-inspections", s.listRoomInspections)
	api.GET("/room-inspections/:id", s.getRoomInspection)

	api.POST("/custodial-notes", s.createCustodialNote)
	api.GET("/custodial-notes", s.listCustodialNotes)
	api.GET("/custodial-notes/:id", s.getCustodialNote)

	api.POST("/monthly-feedback", s.uploadMonthlyFeedback)
	api.GET("/monthly-feedback", s.listMonthlyFeedback)
	api.GET("/monthly-feedback/:id", s.getMonthlyFeedback)

	api.GET("/export/inspections.xlsx", s.exportInspections)
	api.GET("/health", s.health)

	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.logger.Info("http.request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", RequestIDFrom(c),
		)
	}
}
