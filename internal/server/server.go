// Package server wires the analysis pipeline behind an HTTP API: sample a
// review, classify it, decide the business action, return the outcome, and
// hand the record to history and telemetry off the user path.
package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sentimentlab/reviewpulse/internal/classifier"
	"github.com/sentimentlab/reviewpulse/internal/corpus"
	"github.com/sentimentlab/reviewpulse/internal/decision"
	"github.com/sentimentlab/reviewpulse/internal/identity"
	"github.com/sentimentlab/reviewpulse/internal/models"
	"github.com/sentimentlab/reviewpulse/internal/storage"
	"github.com/sentimentlab/reviewpulse/internal/telemetry"
	"go.uber.org/zap"
)

type Server struct {
	router     *gin.Engine
	corpus     *corpus.Corpus
	classifier classifier.Classifier
	store      storage.Storage
	emitter    *telemetry.Emitter
	identity   *identity.Store
	logger     *zap.Logger
}

// New assembles the server. emitter may be nil when telemetry is disabled.
func New(
	corpus *corpus.Corpus,
	clf classifier.Classifier,
	store storage.Storage,
	emitter *telemetry.Emitter,
	ident *identity.Store,
	logger *zap.Logger,
) *Server {
	s := &Server{
		corpus:     corpus,
		classifier: clf,
		store:      store,
		emitter:    emitter,
		identity:   ident,
		logger:     logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.GET("/reviews/sample", s.handleSampleReview)
		api.POST("/analyze", s.handleAnalyze)
		api.GET("/history", s.handleHistory)
		api.GET("/stats", s.handleStats)
	}
	router.GET("/healthz", s.handleHealth)

	s.router = router
	return s
}

// Run blocks serving HTTP on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Review          string        `json:"review"`
	Label           string        `json:"label"`
	Confidence      float64       `json:"confidence"`
	NormalizedScore float64       `json:"normalized_score"`
	Sentiment       string        `json:"sentiment"`
	Action          models.Action `json:"action"`
}

func (s *Server) handleSampleReview(c *gin.Context) {
	review, err := s.corpus.Sample()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

// handleAnalyze runs the full pipeline for one review. Classifier failures
// abandon the attempt and surface to the caller; history and telemetry
// failures stay on the diagnostic channel.
func (s *Server) handleAnalyze(c *gin.Context) {
	// An absent body (io.EOF) means "sample the corpus"; anything else
	// unparseable is the caller's error.
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	review := req.Text
	if review == "" {
		sampled, err := s.corpus.Sample()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		review = sampled
	}
	review = models.TruncateReview(review)

	if s.classifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": classifier.ErrNotReady.Error()})
		return
	}

	result, err := s.classifier.Classify(c.Request.Context(), review)
	if err != nil {
		s.logger.Error("Classification failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	score := decision.Normalize(result.Confidence, result.Label)
	action := decision.Decide(result.Confidence, result.Label)
	record := s.buildRecord(review, result, score, action)

	c.JSON(http.StatusOK, analyzeResponse{
		Review:          review,
		Label:           result.Label,
		Confidence:      result.Confidence,
		NormalizedScore: score,
		Sentiment:       result.Summary(),
		Action:          action,
	})

	if err := s.store.SaveAnalysis(c.Request.Context(), record); err != nil {
		s.logger.Warn("Failed to save analysis history", zap.Error(err), zap.String("record_id", record.ID))
	}

	if s.emitter != nil {
		s.emitter.Emit(*record)
	}
}

func (s *Server) buildRecord(review string, result models.ClassificationResult, score float64, action models.Action) *models.AnalysisRecord {
	userID, err := s.identity.Get()
	if err != nil {
		s.logger.Warn("Failed to resolve user id", zap.Error(err))
		userID = "unknown"
	}

	return &models.AnalysisRecord{
		ID:              uuid.NewString(),
		Timestamp:       models.NowMillis(),
		ReviewText:      review,
		Label:           result.Label,
		Confidence:      result.Confidence,
		NormalizedScore: score,
		Sentiment:       result.Summary(),
		ActionCode:      action.Code,
		Metadata: map[string]any{
			"user_id":           userID,
			"model":             s.classifier.Model(),
			"sentiment_bucket":  decision.Bucket(score),
			"label":             result.Label,
			"confidence":        result.Confidence,
			"review_length":     len(review),
			"business_decision": string(action.Code),
		},
	}
}

func (s *Server) handleHistory(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	records, err := s.store.ListAnalyses(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to list analyses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": records})
}

func (s *Server) handleStats(c *gin.Context) {
	counts, err := s.store.CountByAction(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to count analyses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"actions":     counts,
		"corpus_size": s.corpus.Len(),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
