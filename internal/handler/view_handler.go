package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/pkg/response"
)

// pageLoader is a page whose rows are kept locally between requests.
type pageLoader interface {
	Load(ctx context.Context) error
	Loaded() bool
}

type departmentView interface {
	pageLoader
	Rows() []dto.DepartmentRow
}

type batchView interface {
	pageLoader
	Rows() []dto.BatchRow
	Departments() []dto.Option
}

type studentView interface {
	pageLoader
	Rows(q dto.StudentQuery) []dto.StudentRow
	Total() int
	Detail(ctx context.Context, id int64) (dto.StudentRow, error)
	Batches() []dto.Option
}

type advisorView interface {
	pageLoader
	Rows(search string) []dto.AdvisorRow
	Batches() []dto.Option
}

type internshipView interface {
	pageLoader
	Rows(batchID *int64) []dto.InternshipRow
	Groups() []dto.BatchGroup
	Toggle(batchID int64) bool
	Batches() []dto.Option
}

// Views groups the list pages served by ViewHandler.
type Views struct {
	Departments departmentView
	Batches     batchView
	Students    studentView
	Advisors    advisorView
	Internships internshipView
}

// ViewHandler serves the read side of every management page. A page is
// fetched on first use or with ?refresh=true; search and filter parameters are
// applied to the rows already held.
type ViewHandler struct {
	views Views
}

// NewViewHandler constructs a ViewHandler.
func NewViewHandler(views Views) *ViewHandler {
	return &ViewHandler{views: views}
}

func ensureLoaded(c *gin.Context, page pageLoader) error {
	if page.Loaded() && !refreshRequested(c) {
		return nil
	}
	return page.Load(c.Request.Context())
}

func refreshRequested(c *gin.Context) bool {
	refresh, _ := strconv.ParseBool(c.Query("refresh"))
	return refresh
}

// Departments godoc
// @Summary List departments
// @Tags Departments
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /departments [get]
func (h *ViewHandler) Departments(c *gin.Context) {
	if err := ensureLoaded(c, h.views.Departments); err != nil {
		response.Error(c, err)
		return
	}
	rows := h.views.Departments.Rows()
	response.JSON(c, http.StatusOK, rows, map[string]interface{}{"total": len(rows)})
}

// Batches godoc
// @Summary List batches
// @Description End year is start year plus four; department falls back to "Unknown"
// @Tags Batches
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /batches [get]
func (h *ViewHandler) Batches(c *gin.Context) {
	if err := ensureLoaded(c, h.views.Batches); err != nil {
		response.Error(c, err)
		return
	}
	rows := h.views.Batches.Rows()
	response.JSON(c, http.StatusOK, rows, map[string]interface{}{
		"total":       len(rows),
		"departments": h.views.Batches.Departments(),
	})
}

// Students godoc
// @Summary List students
// @Description search matches name or registration number; batch filters by batch id
// @Tags Students
// @Produce json
// @Param search query string false "Search term"
// @Param batch query int false "Batch ID"
// @Success 200 {object} response.Envelope
// @Param refresh query bool false "Fetch the list again"
// @Router /students [get]
func (h *ViewHandler) Students(c *gin.Context) {
	batchID, err := optionalID(c, "batch")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := ensureLoaded(c, h.views.Students); err != nil {
		response.Error(c, err)
		return
	}
	rows := h.views.Students.Rows(dto.StudentQuery{Search: c.Query("search"), BatchID: batchID})
	response.JSON(c, http.StatusOK, rows, map[string]interface{}{
		"total":   h.views.Students.Total(),
		"shown":   len(rows),
		"batches": h.views.Students.Batches(),
	})
}

// Student godoc
// @Summary Student detail
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *ViewHandler) Student(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	row, err := h.views.Students.Detail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, row)
}

// Advisors godoc
// @Summary List course advisors
// @Description search matches name or login id
// @Tags Advisors
// @Produce json
// @Param search query string false "Search term"
// @Success 200 {object} response.Envelope
// @Param refresh query bool false "Fetch the list again"
// @Router /advisors [get]
func (h *ViewHandler) Advisors(c *gin.Context) {
	if err := ensureLoaded(c, h.views.Advisors); err != nil {
		response.Error(c, err)
		return
	}
	rows := h.views.Advisors.Rows(c.Query("search"))
	response.JSON(c, http.StatusOK, rows, map[string]interface{}{
		"shown":   len(rows),
		"batches": h.views.Advisors.Batches(),
	})
}

// Internships godoc
// @Summary List internships
// @Tags Internships
// @Produce json
// @Param batch query int false "Batch ID"
// @Success 200 {object} response.Envelope
// @Param refresh query bool false "Fetch the list again"
// @Router /internships [get]
func (h *ViewHandler) Internships(c *gin.Context) {
	batchID, err := optionalID(c, "batch")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := ensureLoaded(c, h.views.Internships); err != nil {
		response.Error(c, err)
		return
	}
	rows := h.views.Internships.Rows(batchID)
	response.JSON(c, http.StatusOK, rows, map[string]interface{}{
		"total":   len(rows),
		"batches": h.views.Internships.Batches(),
	})
}

// WithoutInternship godoc
// @Summary Students without an internship, grouped by batch
// @Tags Internships
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /internships/without [get]
func (h *ViewHandler) WithoutInternship(c *gin.Context) {
	if err := ensureLoaded(c, h.views.Internships); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.views.Internships.Groups())
}

// ToggleGroup godoc
// @Summary Expand or collapse a batch group
// @Tags Internships
// @Produce json
// @Param batchId path int true "Batch ID"
// @Success 200 {object} response.Envelope
// @Router /internships/groups/{batchId}/toggle [post]
func (h *ViewHandler) ToggleGroup(c *gin.Context) {
	id, err := pathID(c, "batchId")
	if err != nil {
		response.Error(c, err)
		return
	}
	expanded := h.views.Internships.Toggle(id)
	response.JSON(c, http.StatusOK, gin.H{"batch_id": id, "expanded": expanded})
}
