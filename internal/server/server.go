// Package server exposes the import, validation and normalization
// operations over HTTP.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rezonia/einvoice/internal/model"
	"github.com/rezonia/einvoice/internal/processor"
)

// Config holds server configuration
type Config struct {
	Address        string
	DefaultProfile string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Debug          bool
	Logger         zerolog.Logger
}

// Server is the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *processor.Pipeline
}

// NewServer creates the API server around a pipeline
func NewServer(config *Config, pipeline *processor.Pipeline) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.DefaultProfile == "" {
		config.DefaultProfile = "en16931"
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config:   config,
		router:   router,
		pipeline: pipeline,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/import", s.handleImport)
		v1.POST("/validate", s.handleValidate)
		v1.POST("/normalize", s.handleNormalize)
		v1.GET("/profiles", s.handleProfiles)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.config.Logger.Info().Str("address", s.config.Address).Msg("server listening")
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleImport parses a UBL document. Query parameter mode selects
// strict (default) or lenient import.
func (s *Server) handleImport(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	strict := c.DefaultQuery("mode", "strict") != "lenient"
	result, err := s.pipeline.Process(body, strict, s.profileParam(c))
	if err != nil {
		s.importError(c, err)
		return
	}

	resp := ImportResponse{
		Status:  result.Import.Status.String(),
		Invoice: result.Invoice.Plain(),
	}
	if len(result.Import.TotalMismatches) > 0 {
		resp.TotalMismatches = result.Import.TotalMismatches
	}
	resp.Anomalies = result.Import.Anomalies
	c.JSON(http.StatusOK, resp)
}

// handleValidate imports leniently and reports the profile's findings
func (s *Server) handleValidate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	profileID := s.profileParam(c)
	result, err := s.pipeline.Process(body, false, profileID)
	if err != nil {
		s.importError(c, err)
		return
	}

	findings := result.Findings
	findings = append(findings, result.Import.Anomalies...)
	c.JSON(http.StatusOK, ValidationResponse{
		Valid:    len(findings) == 0,
		Profile:  profileID,
		Findings: findings,
	})
}

// handleNormalize imports leniently, recomputes and re-exports the
// canonical document
func (s *Server) handleNormalize(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	result, err := s.pipeline.Process(body, false, s.profileParam(c))
	if err != nil {
		s.importError(c, err)
		return
	}

	output, err := s.pipeline.Export(result.Invoice)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "export failed", Details: err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/xml", output)
}

func (s *Server) handleProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"profiles": s.pipeline.Registry().ProfileIDs()})
}

func (s *Server) profileParam(c *gin.Context) string {
	return c.DefaultQuery("profile", s.config.DefaultProfile)
}

func (s *Server) importError(c *gin.Context, err error) {
	var importErr *model.ImportError
	if errors.As(err, &importErr) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "import failed",
			Details: importErr.Error(),
		})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}
