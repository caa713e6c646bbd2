package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/flock-console/internal/dto"
	apierrors "github.com/yukikurage/flock-console/internal/errors"
	"github.com/yukikurage/flock-console/internal/services"
)

// BranchHandler serves the branch list and the branch switch protocol.
type BranchHandler struct {
	branchService *services.BranchService
}

// NewBranchHandler creates a new BranchHandler.
func NewBranchHandler(branchService *services.BranchService) *BranchHandler {
	return &BranchHandler{
		branchService: branchService,
	}
}

// ListBranches returns the branch list with the session's current scope.
func (h *BranchHandler) ListBranches(c *gin.Context) {
	sess, ok := loadScope(c, h.branchService)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToBranchScopeDTO(sess.manager))
}

// StageScope records the requested scope as pending. Nothing is invalidated
// until the change is confirmed.
func (h *BranchHandler) StageScope(c *gin.Context) {
	type StageScopeRequest struct {
		// BranchID is null or empty for all branches.
		BranchID *string `json:"branchId"`
	}

	var req StageScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, apierrors.FormatBindingError(err))
		return
	}

	sess, ok := loadScope(c, h.branchService)
	if !ok {
		return
	}
	if req.BranchID != nil && *req.BranchID != "" {
		if _, known := sess.manager.Branch(*req.BranchID); !known {
			apierrors.NotFound(c, "Branch not found")
			return
		}
	}

	staged := sess.manager.Stage(req.BranchID)
	if !sess.save(c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"staged": staged,
		"state":  dto.ToBranchScopeDTO(sess.manager),
	})
}

// ConfirmScope commits the pending scope. The session's cached queries are
// dropped and the client is told to reload.
func (h *BranchHandler) ConfirmScope(c *gin.Context) {
	sess, ok := loadScope(c, h.branchService)
	if !ok {
		return
	}

	res := h.branchService.Confirm(c.Request.Context(), sess.caller, sess.manager)
	if res.Committed && !sess.save(c) {
		return
	}

	c.JSON(http.StatusOK, res)
}

// CancelScope discards the pending scope.
func (h *BranchHandler) CancelScope(c *gin.Context) {
	sess, ok := loadScope(c, h.branchService)
	if !ok {
		return
	}

	sess.manager.Cancel()
	if !sess.save(c) {
		return
	}

	c.JSON(http.StatusOK, dto.ToBranchScopeDTO(sess.manager))
}

// BindField renders the branch field of a record form under the current scope.
func (h *BranchHandler) BindField(c *gin.Context) {
	type BindFieldRequest struct {
		Value    string `json:"value"`
		Required bool   `json:"required"`
	}

	var req BindFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, apierrors.FormatBindingError(err))
		return
	}

	sess, ok := loadScope(c, h.branchService)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, sess.manager.BindField(req.Value, req.Required))
}
