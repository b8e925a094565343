package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"complainthub/backend/internal/complaint"
	"complainthub/backend/internal/config"
	"complainthub/backend/internal/models"
)

type createComplaintRequest struct {
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	IsAnonymous bool    `json:"isAnonymous"`
	ImageURL    *string `json:"imageUrl"`
}

type updateComplaintRequest struct {
	Status        string `json:"status"`
	AdminResponse string `json:"adminResponse"`
}

// ListComplaints reloads the cached collection (each list request is a fresh
// navigation, no incremental sync) and returns the filtered, ordered view.
func (h *Handler) ListComplaints(c *gin.Context) {
	h.simulate(h.Cfg.ListLatency)

	if err := h.State.Reload(c.Request.Context()); err != nil {
		h.log.Error("load complaints", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load complaints. Please try again."})
		return
	}

	crit := complaint.Criteria{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Status:   models.ComplaintStatus(c.Query("status")),
		Sort:     complaint.SortOrder(c.DefaultQuery("sort", string(complaint.SortNewest))),
	}
	if user := h.currentUser(c); user != nil {
		crit.MatchReporter = user.IsAdmin()
		if c.Query("mine") == "true" {
			crit.MineOnly = true
			crit.UserID = user.ID
		}
	}

	all := h.State.Complaints()
	filtered := complaint.Apply(all, crit)
	h.State.SetFiltered(filtered)

	c.JSON(http.StatusOK, gin.H{
		"complaints": filtered,
		"count":      len(filtered),
		"total":      len(all),
	})
}

// CreateComplaint validates the submission, then creates the record. A
// logged-out submission is always anonymous.
func (h *Handler) CreateComplaint(c *gin.Context) {
	var req createComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all required fields."})
		return
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || req.Category == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all required fields."})
		return
	}
	if len(description) > config.MaxDescriptionLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description must be less than 1000 characters."})
		return
	}

	h.simulate(h.Cfg.SubmitLatency)

	created, err := h.Repo.Create(c.Request.Context(), models.ComplaintInput{
		Title:       title,
		Category:    req.Category,
		Description: description,
		IsAnonymous: req.IsAnonymous,
		ImageURL:    req.ImageURL,
	}, h.currentUser(c))
	if err != nil {
		h.log.Error("create complaint", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit complaint. Please try again."})
		return
	}

	h.Hub.Publish(c.Request.Context(), models.ComplaintEvent{
		Type:      models.EventComplaintCreated,
		Complaint: *created,
	})
	if h.Notifier != nil {
		h.Notifier.ComplaintCreated(*created)
	}

	c.JSON(http.StatusCreated, gin.H{"complaint": created})
}

// GetComplaint returns one record or a user-visible not-found message.
func (h *Handler) GetComplaint(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint id"})
		return
	}

	h.simulate(h.Cfg.ListLatency)

	found, err := h.Repo.FindByID(c.Request.Context(), id)
	if errors.Is(err, complaint.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}
	if err != nil {
		h.log.Error("find complaint", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load complaint. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaint": found})
}

// UpdateComplaint is the admin triage operation: merge status and response,
// rejecting a resolution without a response before any mutation.
func (h *Handler) UpdateComplaint(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint id"})
		return
	}

	var req updateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update request"})
		return
	}
	status := models.ComplaintStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	existing, err := h.Repo.FindByID(c.Request.Context(), id)
	if errors.Is(err, complaint.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}
	if err != nil {
		h.log.Error("find complaint", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update complaint. Please try again."})
		return
	}

	patch := models.ComplaintPatch{
		Status:        status,
		AdminResponse: strings.TrimSpace(req.AdminResponse),
	}
	if err := complaint.ValidateResolution(patch, existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admin response is required when marking as resolved."})
		return
	}

	h.simulate(h.Cfg.UpdateLatency)

	updated, err := h.Repo.Update(c.Request.Context(), id, patch)
	if errors.Is(err, complaint.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}
	if err != nil {
		h.log.Error("update complaint", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update complaint. Please try again."})
		return
	}

	eventType := models.EventComplaintUpdated
	if updated.Status == models.StatusResolved {
		eventType = models.EventComplaintResolved
	}
	h.Hub.Publish(c.Request.Context(), models.ComplaintEvent{
		Type:      eventType,
		Complaint: *updated,
	})
	if h.Notifier != nil && updated.Status == models.StatusResolved {
		h.Notifier.ComplaintResolved(*updated)
	}

	c.JSON(http.StatusOK, gin.H{"complaint": updated})
}

// GetStats summarizes the collection for the dashboards.
func (h *Handler) GetStats(c *gin.Context) {
	complaints, err := h.Repo.List(c.Request.Context())
	if err != nil {
		h.log.Error("load complaints", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load complaints. Please try again."})
		return
	}
	c.JSON(http.StatusOK, complaint.Summarize(complaints))
}
