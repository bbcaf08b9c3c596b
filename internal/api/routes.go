package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ahp-decide/internal/decision"
	"ahp-decide/internal/store"
	"ahp-decide/internal/util"
)

// Config defines server dependencies.
type Config struct {
	DBPath         string
	AllowedOrigins []string
	SilentDB       bool
}

// Server wires HTTP handlers with persistence and the decision engine.
type Server struct {
	db             *store.Database
	allowedOrigins []string
	notifier       *EvaluationNotifier

	// The engine provides no locking; mutations against stored decisions
	// are serialized here.
	mu sync.Mutex
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewServer constructs the API server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("db path required")
	}
	db, err := store.Open(cfg.DBPath, cfg.SilentDB)
	if err != nil {
		return nil, err
	}
	return &Server{
		db:             db,
		allowedOrigins: cfg.AllowedOrigins,
		notifier:       NewEvaluationNotifier(),
	}, nil
}

// Close releases the server's database handle.
func (s *Server) Close() error {
	return s.db.Close()
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsCfg.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/api/healthz", s.handleHealth)

	api := r.Group("/api")
	{
		api.GET("/decisions", s.handleListDecisions)
		api.POST("/decisions", s.handleCreateDecision)
		api.POST("/decisions/import", s.handleImportDecision)
		api.GET("/decisions/stream", s.handleDecisionStream)
		api.GET("/decisions/:id", s.handleGetDecision)
		api.DELETE("/decisions/:id", s.handleDeleteDecision)
		api.POST("/decisions/:id/criteria", s.handleAddCriterion)
		api.POST("/decisions/:id/alternatives", s.handleAddAlternative)
		api.DELETE("/decisions/:id/criteria/:ref", s.handleRemoveCriterion)
		api.DELETE("/decisions/:id/alternatives/:ref", s.handleRemoveAlternative)
		api.POST("/decisions/:id/compare", s.handleCompare)
		api.GET("/decisions/:id/validation", s.handleValidation)
		api.POST("/decisions/:id/evaluate", s.handleEvaluate)
		api.GET("/decisions/:id/export.json", s.handleExportJSON)
	}

	return r, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListDecisions(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 0 {
		page = 0
	}
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	if pageSize <= 0 {
		pageSize = 25
	}

	rows, total, err := s.db.ListDecisions(page*pageSize, pageSize)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	dtos := make([]DecisionDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, FromRecord(row))
	}
	c.JSON(http.StatusOK, DecisionsResponse{Items: dtos, Total: total})
}

func (s *Server) handleCreateDecision(c *gin.Context) {
	var req CreateDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}

	dec := decision.New(req.Goal, nil)
	for _, name := range req.Criteria {
		if err := dec.AddCriterion(decision.Criterion{Name: name}); err != nil {
			s.renderEngineError(c, err)
			return
		}
	}
	for _, name := range req.Alternatives {
		if err := dec.AddAlternative(decision.Alternative{Name: name}); err != nil {
			s.renderEngineError(c, err)
			return
		}
	}

	if _, err := s.db.SaveDecision(dec); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	logrus.WithFields(logrus.Fields{
		"decision_id":  dec.ID,
		"criteria":     len(dec.Criteria),
		"alternatives": len(dec.Alternatives),
	}).Info("decision created")
	s.renderDecision(c, http.StatusCreated, dec)
}

func (s *Server) handleImportDecision(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	dec, err := decision.Load(data, nil)
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	if _, err := s.db.SaveDecision(dec); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	logrus.WithField("decision_id", dec.ID).Info("decision imported")
	s.renderDecision(c, http.StatusCreated, dec)
}

func (s *Server) handleGetDecision(c *gin.Context) {
	record, ok := s.loadRecord(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(record.PayloadJSON))
}

func (s *Server) handleExportJSON(c *gin.Context) {
	record, ok := s.loadRecord(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", record.ID))
	c.Data(http.StatusOK, "application/json", []byte(record.PayloadJSON))
}

func (s *Server) handleDeleteDecision(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.db.DeleteDecision(id); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleAddCriterion(c *gin.Context) {
	s.mutateDecision(c, func(dec *decision.Decision) error {
		var req ItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return &decision.ValidationError{Message: err.Error()}
		}
		return dec.AddCriterion(decision.Criterion{Name: req.Name})
	})
}

func (s *Server) handleAddAlternative(c *gin.Context) {
	s.mutateDecision(c, func(dec *decision.Decision) error {
		var req ItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return &decision.ValidationError{Message: err.Error()}
		}
		return dec.AddAlternative(decision.Alternative{Name: req.Name})
	})
}

func (s *Server) handleRemoveCriterion(c *gin.Context) {
	s.mutateDecision(c, func(dec *decision.Decision) error {
		dec.RemoveCriterion(c.Param("ref"))
		return nil
	})
}

func (s *Server) handleRemoveAlternative(c *gin.Context) {
	s.mutateDecision(c, func(dec *decision.Decision) error {
		dec.RemoveAlternative(c.Param("ref"))
		return nil
	})
}

func (s *Server) handleCompare(c *gin.Context) {
	s.mutateDecision(c, func(dec *decision.Decision) error {
		var req CompareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return &decision.ValidationError{Message: err.Error()}
		}
		return dec.Compare(decision.Judgment{
			Item:      req.Item,
			Pair:      req.Pair,
			Criterion: req.Criterion,
			Weight:    req.Weight,
		})
	})
}

func (s *Server) handleValidation(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dec, ok := s.loadDecision(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dec.Validate())
}

func (s *Server) handleEvaluate(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dec, ok := s.loadDecision(c)
	if !ok {
		return
	}

	watch := util.StartStopwatch()
	if err := dec.Evaluate(); err != nil {
		s.renderEngineError(c, err)
		return
	}
	if _, err := s.db.SaveDecision(dec); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"decision_id": dec.ID,
		"recommended": dec.Summary.RecommendedChoice,
		"duration_ms": watch.ElapsedMs(),
	}).Info("decision evaluated")
	s.notifier.Broadcast(EvaluationEvent{
		Type:              "evaluation",
		DecisionID:        dec.ID,
		Goal:              dec.Goal,
		RecommendedChoice: dec.Summary.RecommendedChoice,
		Breakdown:         dec.Summary.Breakdown,
		DurationMs:        watch.ElapsedMs(),
	})
	s.renderDecision(c, http.StatusOK, dec)
}

func (s *Server) handleDecisionStream(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade")
		return
	}
	client := s.notifier.Register(conn)
	defer s.notifier.Unregister(client)

	// Drain reads until the peer hangs up.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// mutateDecision loads the addressed decision, applies the mutation, and
// saves the result. Engine errors map to 400/422 responses.
func (s *Server) mutateDecision(c *gin.Context, mutate func(*decision.Decision) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dec, ok := s.loadDecision(c)
	if !ok {
		return
	}
	if err := mutate(dec); err != nil {
		s.renderEngineError(c, err)
		return
	}
	if _, err := s.db.SaveDecision(dec); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	s.renderDecision(c, http.StatusOK, dec)
}

func (s *Server) loadRecord(c *gin.Context) (*store.DecisionRecord, bool) {
	id := strings.TrimSpace(c.Param("id"))
	record, err := s.db.GetDecision(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.renderError(c, http.StatusNotFound, fmt.Errorf("decision %s not found", id))
		} else {
			s.renderError(c, http.StatusInternalServerError, err)
		}
		return nil, false
	}
	return record, true
}

func (s *Server) loadDecision(c *gin.Context) (*decision.Decision, bool) {
	record, ok := s.loadRecord(c)
	if !ok {
		return nil, false
	}
	dec, err := record.Decision()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return nil, false
	}
	return dec, true
}

func (s *Server) renderDecision(c *gin.Context, status int, dec *decision.Decision) {
	data, err := dec.JSON()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(status, "application/json", data)
}

// renderEngineError maps engine failures onto HTTP statuses: the aggregate
// validation failure becomes 422 with the full defect list, a single
// fail-fast contract violation becomes 400.
func (s *Server) renderEngineError(c *gin.Context, err error) {
	var aggregate decision.ValidationErrors
	if errors.As(err, &aggregate) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  aggregate.Error(),
			"errors": aggregate.Messages(),
		})
		return
	}
	var single *decision.ValidationError
	if errors.As(err, &single) {
		s.renderError(c, http.StatusBadRequest, single)
		return
	}
	s.renderError(c, http.StatusInternalServerError, err)
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}
