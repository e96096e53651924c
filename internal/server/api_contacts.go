package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	contacthttpmapper "github.com/Apurer/portfolio-api/internal/domains/contacts/adapters/http/mapper"
	contactports "github.com/Apurer/portfolio-api/internal/domains/contacts/ports"
	apierrors "github.com/Apurer/portfolio-api/internal/shared/errors"
)

const (
	msgContactDelivered = "Thank you! Your message has been sent successfully. I will get back to you soon."
	msgContactReceived  = "Thank you! Your message has been received. I will get back to you soon."
	noteDeliveryFailed  = "Message saved (email service temporarily unavailable)"
)

// ContactsAPI wires HTTP transport with contact intake.
type ContactsAPI struct {
	service contactports.Service
	errs    *apierrors.ChainedResponder
}

// NewContactsAPI creates a ContactsAPI backed by the provided service.
func NewContactsAPI(service contactports.Service, logger *slog.Logger) ContactsAPI {
	return ContactsAPI{service: service, errs: contactResponder(logger)}
}

// Post /api/contact
// Records a contact-form submission and notifies the site owner
func (api *ContactsAPI) SubmitContact(c *gin.Context) {
	var payload contacthttpmapper.ContactPayload
	if !bindJSON(c, &payload) {
		return
	}
	result, err := api.service.Submit(c.Request.Context(), contacthttpmapper.ToSubmitInput(payload, c.ClientIP()))
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	if !result.Delivered {
		respondOK(c, http.StatusOK, gin.H{"message": msgContactReceived, "note": noteDeliveryFailed})
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": msgContactDelivered, "messageId": result.Receipt.MessageID})
}

// Get /api/contacts
// Lists stored submissions newest first
func (api *ContactsAPI) ListContacts(c *gin.Context) {
	contacts, err := api.service.List(c.Request.Context())
	if err != nil {
		apierrors.Respond(c, apierrors.ErrInternal.WithMessage("Failed to fetch contacts"))
		return
	}
	respondOK(c, http.StatusOK, gin.H{"contacts": contacthttpmapper.FromDomainList(contacts)})
}
