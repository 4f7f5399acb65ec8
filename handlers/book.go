package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"bookingwizard/models"
	"bookingwizard/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookHandler accepts finished booking forms at POST /api/book.
type BookHandler struct {
	Notifier     notification.BookingNotifier
	ThankYouPath string
	Now          func() time.Time
}

func NewBookHandler(notifier notification.BookingNotifier, thankYouPath string) *BookHandler {
	return &BookHandler{
		Notifier:     notifier,
		ThankYouPath: thankYouPath,
		Now:          time.Now,
	}
}

// CreateBooking checks the request shape, queues the notification and
// redirects to the thank-you page with a 303.
func (h *BookHandler) CreateBooking(c *gin.Context) {
	logger := getLogger(c)

	if !strings.Contains(c.GetHeader("Content-Type"), "application/json") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content-Type must be application/json"})
		return
	}

	raw, err := c.GetRawData()
	if err != nil || !json.Valid(raw) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	var shape map[string]any
	if err := json.Unmarshal(raw, &shape); err != nil || !isString(shape["name"]) || !isString(shape["contactDetail"]) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	form := formFromBody(shape)

	if err := h.Notifier.NotifyBooking(c.Request.Context(), models.NewBookingNotification(form, h.Now().UTC())); err != nil {
		logger.Error("booking: failed to queue notification", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not record booking request"})
		return
	}

	logger.Info("booking accepted", zap.String("service", form.Service), zap.String("contactMethod", string(form.ContactMethod)))
	c.Redirect(http.StatusSeeOther, h.ThankYouPath)
}

// formFromBody reads the form leniently: optional fields of the wrong type
// are left empty and non-boolean sensory flags are ignored.
func formFromBody(body map[string]any) models.FormData {
	form := models.FormData{
		Name:             stringField(body, "name"),
		ContactMethod:    models.ContactMethod(stringField(body, "contactMethod")),
		ContactDetail:    stringField(body, "contactDetail"),
		Address:          stringField(body, "address"),
		Service:          stringField(body, "service"),
		PreferredTime:    stringField(body, "preferredTime"),
		Notes:            stringField(body, "notes"),
		OtherPreferences: stringField(body, "otherPreferences"),
	}
	if sensory, ok := body["sensory"].(map[string]any); ok {
		for key, v := range sensory {
			if on, ok := v.(bool); ok {
				form.Sensory.Set(key, on)
			}
		}
	}
	return form
}

func stringField(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return s
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}
