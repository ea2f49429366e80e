package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Skufu/healthcare-ai/internal/kv"
	"github.com/Skufu/healthcare-ai/internal/medicine"
	"github.com/Skufu/healthcare-ai/internal/risk"
	"github.com/Skufu/healthcare-ai/internal/session"
)

type handler struct {
	sessions  *session.Store
	predictor *risk.Predictor
	health    kv.HealthChecker
	log       *zap.Logger

	predictionDelay     time.Duration
	recommendationDelay time.Duration
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *handler) readyz(c *gin.Context) {
	sessionStatus := "ready"
	if h.sessions.Loading() {
		sessionStatus = "loading"
	}

	if h.health == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": "disabled", "session": sessionStatus})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "degraded",
			"store":   fmt.Sprintf("unhealthy: %v", err),
			"session": sessionStatus,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "store": "ok", "session": sessionStatus})
}

func (h *handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user":    h.currentOrNil(),
		"loading": h.sessions.Loading(),
	})
}

func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if !h.bind(c, &req) {
		return
	}

	ok, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_unavailable"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": h.currentOrNil()})
}

func (h *handler) signup(c *gin.Context) {
	var req signupRequest
	if !h.bind(c, &req) {
		return
	}

	if _, err := h.sessions.Signup(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		h.log.Error("signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_unavailable"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": h.currentOrNil()})
}

func (h *handler) logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context()); err != nil {
		h.log.Error("logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_unavailable"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) updateProfile(c *gin.Context) {
	var req profileRequest
	if !h.bind(c, &req) {
		return
	}

	id, err := h.sessions.UpdateProfile(c.Request.Context(), req.Name, req.Email)
	switch {
	case errors.Is(err, session.ErrAnonymous):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "redirect": session.PathLogin})
		return
	case err != nil:
		h.log.Error("profile update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": id})
}

func (h *handler) access(c *gin.Context) {
	path := c.DefaultQuery("path", session.PathHome)
	decision := session.Authorize(h.currentOrNil(), path)
	c.JSON(http.StatusOK, gin.H{
		"path":     path,
		"allowed":  decision.Allowed,
		"redirect": decision.Redirect,
		"loading":  h.sessions.Loading(),
	})
}

func (h *handler) vocabulary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"symptoms":      medicine.Symptoms,
		"conditions":    medicine.Conditions,
		"severities":    medicine.Severities,
		"durations":     medicine.Durations,
		"familyHistory": risk.FamilyHistoryConditions,
		"smoking":       []string{risk.SmokingNever, risk.SmokingFormer, risk.SmokingCurrent},
		"exercise": []string{
			risk.ExerciseDaily, risk.ExerciseWeekly, risk.ExerciseOccasionally, risk.ExerciseNone,
		},
	})
}

func (h *handler) predictDisease(c *gin.Context) {
	var form risk.Form
	if !h.bind(c, &form) {
		return
	}
	if !h.simulateLatency(c, h.predictionDelay) {
		return
	}

	result := h.predictor.Predict(form.Parameters())
	h.log.Debug("disease prediction",
		zap.String("user_id", callerID(c)),
		zap.Int("risk_score", result.RiskScore),
		zap.String("risk_level", string(result.RiskLevel)),
	)
	c.JSON(http.StatusOK, result)
}

func (h *handler) recommendMedicine(c *gin.Context) {
	var profile medicine.SymptomProfile
	if !h.bind(c, &profile) {
		return
	}
	if !h.simulateLatency(c, h.recommendationDelay) {
		return
	}

	recs := medicine.Recommend(profile.Normalize())
	h.log.Debug("medicine recommendation",
		zap.String("user_id", callerID(c)),
		zap.String("symptom", profile.PrimarySymptom),
	)
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// bind decodes the JSON body into dst, answering 400 for undecodable bodies
// and 422 for validation failures.
func (h *handler) bind(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	if details, ok := validationDetails(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation_failed", "details": details})
		return false
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload_too_large"})
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
	return false
}

// simulateLatency holds the response for d. It reports false when the
// client went away first.
func (h *handler) simulateLatency(c *gin.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-c.Request.Context().Done():
		h.log.Debug("client left during simulated latency", zap.String("path", c.Request.URL.Path))
		c.Abort()
		return false
	}
}

func (h *handler) currentOrNil() *session.Identity {
	id, ok := h.sessions.Current()
	if !ok {
		return nil
	}
	return &id
}

func callerID(c *gin.Context) string {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(session.Identity); ok {
			return id.ID
		}
	}
	return ""
}
