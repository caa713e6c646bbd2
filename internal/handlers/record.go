package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/flock-console/internal/entitlement"
	apierrors "github.com/yukikurage/flock-console/internal/errors"
	"github.com/yukikurage/flock-console/internal/services"
	"github.com/yukikurage/flock-console/internal/utils"
)

// branchField is the record body key carrying the branch id.
const branchField = "branchId"

// Resource is a record collection forwarded to the API server.
type Resource struct {
	// Name is both the console and the upstream path segment.
	Name string
	// Feature gates every route of the resource when set.
	Feature string
	// BranchRequired makes creation fail without a branch.
	BranchRequired bool
}

func (r Resource) path() string {
	return "/" + r.Name
}

// Resources lists the record collections the console forwards.
var Resources = []Resource{
	{Name: "members", BranchRequired: true},
	{Name: "events", Feature: entitlement.FeatureEventManagement, BranchRequired: true},
	{Name: "donations", BranchRequired: true},
	{Name: "expenses", BranchRequired: true},
	{Name: "attendance", Feature: entitlement.FeatureAttendanceTracking, BranchRequired: true},
	{Name: "messages"},
	{Name: "prayer-requests"},
	{Name: "departments", Feature: entitlement.FeatureDepartmentManagement, BranchRequired: true},
}

// RecordHandler forwards record reads and writes under the session's branch scope.
type RecordHandler struct {
	recordService *services.RecordService
	branchService *services.BranchService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordService *services.RecordService, branchService *services.BranchService) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
		branchService: branchService,
	}
}

// List returns a handler listing res filtered to the current branch scope.
func (h *RecordHandler) List(res Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.scopedGet(c, res.path(), nil)
	}
}

// Create returns a handler creating a record of res. Under a specific scope
// the branch is forced to the scoped branch; otherwise a submitted branch
// must be one of the organization's branches.
func (h *RecordHandler) Create(res Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			apierrors.BadRequest(c, apierrors.FormatBindingError(err))
			return
		}
		if body == nil {
			apierrors.BadRequest(c, "Request body must be a JSON object")
			return
		}

		sess, ok := loadScope(c, h.branchService)
		if !ok {
			return
		}

		submitted, _ := body[branchField].(string)
		field := sess.manager.BindField(submitted, res.BranchRequired)
		if !field.ReadOnly && field.Value != "" {
			if _, known := sess.manager.Branch(field.Value); !known {
				apierrors.BadRequestWithDetails(c, "Unknown branch", gin.H{
					"field":       branchField,
					"branchField": field,
				})
				return
			}
		}
		if !field.Valid() {
			apierrors.MissingField(c, field.Error, gin.H{
				"field":       branchField,
				"branchField": field,
			})
			return
		}
		if field.Value == "" {
			delete(body, branchField)
		} else {
			body[branchField] = field.Value
		}

		data, err := h.recordService.Post(c.Request.Context(), sess.caller, res.path(), body)
		if err != nil {
			respondUpstreamError(c, err)
			return
		}

		c.Data(http.StatusCreated, "application/json; charset=utf-8", data)
	}
}

// ShareEvent shares one event through the API server.
func (h *RecordHandler) ShareEvent(c *gin.Context) {
	type ShareEventRequest struct {
		Channels []string `json:"channels" binding:"required,min=1"`
		Message  string   `json:"message"`
	}

	var req ShareEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, apierrors.FormatBindingError(err))
		return
	}

	sess, ok := loadScope(c, h.branchService)
	if !ok {
		return
	}

	data, err := h.recordService.Post(c.Request.Context(), sess.caller, "/events/"+url.PathEscape(c.Param("id"))+"/share", req)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// Birthdays lists upcoming member birthdays in the current scope.
func (h *RecordHandler) Birthdays(c *gin.Context) {
	h.scopedGet(c, "/members/birthdays", passThrough(c, "month", "days"))
}

// FinancialReport returns the income and expense summary in the current scope.
func (h *RecordHandler) FinancialReport(c *gin.Context) {
	h.scopedGet(c, "/reports/financial", passThrough(c, "from", "to"))
}

// AdvancedFinancialReport returns the detailed financial breakdown.
func (h *RecordHandler) AdvancedFinancialReport(c *gin.Context) {
	h.scopedGet(c, "/reports/financial/advanced", passThrough(c, "from", "to", "groupBy", "fundBucket"))
}

func (h *RecordHandler) scopedGet(c *gin.Context, path string, filters url.Values) {
	sess, ok := loadScope(c, h.branchService)
	if !ok {
		return
	}

	query := services.ListQuery{
		BranchID:   sess.manager.SelectedBranchID(),
		Pagination: utils.GetPaginationParams(c),
		Search:     c.Query("search"),
		Filters:    filters,
	}
	data, err := h.recordService.Get(c.Request.Context(), sess.caller, path, query)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// passThrough copies the named query parameters when present.
func passThrough(c *gin.Context, keys ...string) url.Values {
	v := url.Values{}
	for _, key := range keys {
		if value := c.Query(key); value != "" {
			v.Set(key, value)
		}
	}
	return v
}
