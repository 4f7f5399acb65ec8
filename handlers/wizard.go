package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bookingwizard/models"
	"bookingwizard/services/wizard"
	"bookingwizard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WizardHandler exposes wizard sessions over HTTP.
type WizardHandler struct {
	Service wizard.WizardSessionService
}

func NewWizardHandler(service wizard.WizardSessionService) *WizardHandler {
	return &WizardHandler{Service: service}
}

// GetCatalog returns the steps, services and sensory options.
func (h *WizardHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, models.DefaultCatalog())
}

func (h *WizardHandler) StartSession(c *gin.Context) {
	res, err := h.Service.StartSession(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *WizardHandler) GetSession(c *gin.Context) {
	res, err := h.Service.GetSession(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, res, err)
}

// SetFields applies a JSON object of field name to value.
func (h *WizardHandler) SetFields(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	res, err := h.Service.SetFields(c.Request.Context(), c.Param("sessionID"), fields)
	h.respond(c, res, err)
}

// SetSensory applies a JSON object of sensory key to flag.
func (h *WizardHandler) SetSensory(c *gin.Context) {
	var prefs map[string]bool
	if err := c.ShouldBindJSON(&prefs); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	res, err := h.Service.SetSensory(c.Request.Context(), c.Param("sessionID"), prefs)
	h.respond(c, res, err)
}

func (h *WizardHandler) NextStep(c *gin.Context) {
	res, err := h.Service.Next(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, res, err)
}

func (h *WizardHandler) PrevStep(c *gin.Context) {
	res, err := h.Service.Prev(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, res, err)
}

func (h *WizardHandler) GoToStep(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid step", err.Error())
		return
	}
	res, err := h.Service.GoTo(c.Request.Context(), c.Param("sessionID"), models.StepID(step))
	h.respond(c, res, err)
}

func (h *WizardHandler) DismissError(c *gin.Context) {
	res, err := h.Service.DismissError(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, res, err)
}

// SubmitBooking sends the finished booking. A failed submission is still a
// 200: the failure is part of the session state shown to the client.
func (h *WizardHandler) SubmitBooking(c *gin.Context) {
	res, err := h.Service.Submit(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, res, err)
}

func (h *WizardHandler) CancelSession(c *gin.Context) {
	if err := h.Service.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WizardHandler) respond(c *gin.Context, res *wizard.ActionResult, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *WizardHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking session not found or expired", "")
	case errors.Is(err, wizard.ErrSubmissionInProgress):
		utils.JSONError(c, http.StatusConflict, "submission already in progress", "")
	case errors.Is(err, wizard.ErrNotReadyToSubmit):
		utils.JSONError(c, http.StatusUnprocessableEntity, "booking is not ready to submit", "")
	case errors.Is(err, wizard.ErrUnknownField),
		errors.Is(err, wizard.ErrUnknownSensoryKey),
		errors.Is(err, wizard.ErrInvalidContactMethod),
		errors.Is(err, wizard.ErrInvalidStep):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
	default:
		getLogger(c).Error("wizard request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
	}
}
