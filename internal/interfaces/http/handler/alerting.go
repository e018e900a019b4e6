package handler

import (
	"github.com/gin-gonic/gin"

	appalerting "github.com/storefront/backend/internal/application/alerting"
)

// AlertingHandler serves admin alert rules and notification templates
type AlertingHandler struct {
	BaseHandler
	alertRuleService *appalerting.AlertRuleService
	templateService  *appalerting.TemplateService
}

// NewAlertingHandler creates a new AlertingHandler
func NewAlertingHandler(alertRuleService *appalerting.AlertRuleService, templateService *appalerting.TemplateService) *AlertingHandler {
	return &AlertingHandler{alertRuleService: alertRuleService, templateService: templateService}
}

// CreateRule creates an alert rule
// POST /api/v1/admin/alert-rules
func (h *AlertingHandler) CreateRule(c *gin.Context) {
	var req appalerting.SaveAlertRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rule, err := h.alertRuleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rule)
}

// UpdateRule updates an alert rule
// PUT /api/v1/admin/alert-rules/:id
func (h *AlertingHandler) UpdateRule(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid alert rule ID")
		return
	}

	var req appalerting.SaveAlertRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rule, err := h.alertRuleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rule)
}

// GetRule returns an alert rule by ID
// GET /api/v1/admin/alert-rules/:id
func (h *AlertingHandler) GetRule(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid alert rule ID")
		return
	}

	rule, err := h.alertRuleService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rule)
}

// ListRules returns alert rules matching the filter
// GET /api/v1/admin/alert-rules
func (h *AlertingHandler) ListRules(c *gin.Context) {
	var filter appalerting.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	rules, total, err := h.alertRuleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, rules, total, filter.Page, filter.PageSize)
}

// EventTypes returns the event types a rule can watch
// GET /api/v1/admin/alert-rules/event-types
func (h *AlertingHandler) EventTypes(c *gin.Context) {
	h.Success(c, h.alertRuleService.EventTypes())
}

// DeleteRule removes an alert rule
// DELETE /api/v1/admin/alert-rules/:id
func (h *AlertingHandler) DeleteRule(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid alert rule ID")
		return
	}

	if err := h.alertRuleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateTemplate creates a notification template
// POST /api/v1/admin/templates
func (h *AlertingHandler) CreateTemplate(c *gin.Context) {
	var req appalerting.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tmpl, err := h.templateService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tmpl)
}

// UpdateTemplate updates a notification template
// PUT /api/v1/admin/templates/:id
func (h *AlertingHandler) UpdateTemplate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	var req appalerting.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tmpl, err := h.templateService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tmpl)
}

// GetTemplate returns a notification template by ID
// GET /api/v1/admin/templates/:id
func (h *AlertingHandler) GetTemplate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	tmpl, err := h.templateService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tmpl)
}

// ListTemplates returns notification templates matching the filter
// GET /api/v1/admin/templates
func (h *AlertingHandler) ListTemplates(c *gin.Context) {
	var filter appalerting.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	templates, total, err := h.templateService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, templates, total, filter.Page, filter.PageSize)
}

// PreviewTemplate renders a template with placeholder names as sample
// values
// GET /api/v1/admin/templates/:id/preview
func (h *AlertingHandler) PreviewTemplate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	preview, err := h.templateService.Preview(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, preview)
}

// DeleteTemplate removes a template that no rule references
// DELETE /api/v1/admin/templates/:id
func (h *AlertingHandler) DeleteTemplate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
