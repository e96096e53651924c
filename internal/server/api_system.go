package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/portfolio-api/internal/platform/mail"
)

// MailDiagnostics is the part of a mail transport the system endpoints probe.
type MailDiagnostics interface {
	Mode() mail.Mode
	Verify(ctx context.Context) error
}

// SystemAPI serves health and mail diagnostics.
type SystemAPI struct {
	mail          MailDiagnostics
	verifyTimeout time.Duration
	now           func() time.Time
}

// NewSystemAPI creates a SystemAPI probing transport. verifyTimeout bounds
// the email-test round trip.
func NewSystemAPI(transport MailDiagnostics, verifyTimeout time.Duration) SystemAPI {
	if verifyTimeout <= 0 {
		verifyTimeout = 10 * time.Second
	}
	return SystemAPI{mail: transport, verifyTimeout: verifyTimeout, now: time.Now}
}

// Get /api/health
// Reports liveness and which services are configured
func (api *SystemAPI) Health(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{
		"status":    "Server is healthy",
		"timestamp": api.now().UTC().Format(time.RFC3339Nano),
		"services": gin.H{
			"email":    api.mail != nil && api.mail.Mode() == mail.ModeSMTP,
			"projects": true,
			"contacts": true,
		},
	})
}

// Get /api/email-test
// Verifies the mail transport without sending a message
func (api *SystemAPI) EmailTest(c *gin.Context) {
	if api.mail == nil || api.mail.Mode() != mail.ModeSMTP {
		respondOK(c, http.StatusOK, gin.H{
			"status":     "Console Mode",
			"message":    "Email credentials not configured. Messages will be logged to console.",
			"configured": false,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), api.verifyTimeout)
	defer cancel()
	if err := api.mail.Verify(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":    false,
			"error":      "Email configuration error: " + err.Error(),
			"configured": false,
		})
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"status":     "Email service is configured correctly",
		"service":    "SMTP",
		"configured": true,
	})
}
