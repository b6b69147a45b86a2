package handler

import (
	"net/http"

	"citypulse-service/internal/moderation"
	"citypulse-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TranslateRequest defines the structure for translate requests
type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

// ModerationRequest defines the structure for moderation requests
type ModerationRequest struct {
	Text string `json:"text"`
}

// Translate echoes the text back unchanged. Placeholder until a real
// translation backend is configured.
func Translate(c echo.Context) error {
	var req TranslateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if req.TargetLang == "" {
		req.TargetLang = "en"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"translated": req.Text,
		"lang":       req.TargetLang,
	})
}

// Moderate runs the keyword filter over the submitted text.
func Moderate(c echo.Context) error {
	log := logger.FromContext(c)

	var req ModerationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	flagged := moderation.Flagged(req.Text)
	if flagged {
		log.Info("Content flagged by keyword filter", zap.Int("length", len(req.Text)))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"flagged": flagged,
	})
}
