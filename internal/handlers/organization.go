package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/flock-console/internal/clientstate"
	"github.com/yukikurage/flock-console/internal/dto"
	apierrors "github.com/yukikurage/flock-console/internal/errors"
	"github.com/yukikurage/flock-console/internal/middleware"
	"github.com/yukikurage/flock-console/internal/services"
)

// OrganizationHandler serves the caller's organization and the onboarding
// wizard's progress.
type OrganizationHandler struct {
	orgService *services.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// GetOrganization returns the organization, its branches and onboarding progress.
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	env, err := h.orgService.Organization(c.Request.Context(), caller)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	onboarding := clientstate.FromContext(c).Onboarding()
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(env, onboarding))
}

// GetOnboarding returns the saved wizard progress.
func (h *OrganizationHandler) GetOnboarding(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToOnboardingDTO(clientstate.FromContext(c).Onboarding()))
}

// SaveOnboarding replaces the saved wizard progress.
func (h *OrganizationHandler) SaveOnboarding(c *gin.Context) {
	type SaveOnboardingRequest struct {
		Step           *int                       `json:"step" binding:"required,min=0"`
		Answers        map[string]json.RawMessage `json:"answers"`
		OrganizationID string                     `json:"organizationId"`
	}

	var req SaveOnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, apierrors.FormatBindingError(err))
		return
	}

	st := clientstate.OnboardingState{
		Step:           *req.Step,
		Answers:        req.Answers,
		OrganizationID: req.OrganizationID,
	}
	h.persistOnboarding(c, st)
}

// SaveOnboardingStep records the answers of one step and advances to it.
func (h *OrganizationHandler) SaveOnboardingStep(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil || step < 0 {
		apierrors.BadRequest(c, "Invalid step")
		return
	}

	var answers json.RawMessage
	if err := c.ShouldBindJSON(&answers); err != nil {
		apierrors.BadRequest(c, apierrors.FormatBindingError(err))
		return
	}

	st := clientstate.FromContext(c).Onboarding()
	st.Answers[strconv.Itoa(step)] = answers
	if step > st.Step {
		st.Step = step
	}
	h.persistOnboarding(c, st)
}

// ResetOnboarding discards the saved wizard progress.
func (h *OrganizationHandler) ResetOnboarding(c *gin.Context) {
	store := clientstate.FromContext(c)
	store.ClearOnboarding()
	if err := store.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Onboarding progress cleared",
	})
}

func (h *OrganizationHandler) persistOnboarding(c *gin.Context, st clientstate.OnboardingState) {
	store := clientstate.FromContext(c)
	if err := store.SetOnboarding(st); err != nil {
		apierrors.InternalError(c, "Failed to save onboarding progress")
		return
	}
	if err := store.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToOnboardingDTO(st))
}
