package v1

import (
	"net/http"

	"alumni-network-backend/internal/delivery/http/response"
	"alumni-network-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

func NewInterviewHandler(protected *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	interviews := protected.Group("/interviews")
	{
		interviews.GET("", handler.List)
		interviews.POST("", handler.Create)
		interviews.POST("/bulk", handler.CreateBulk)
	}
}

// List godoc
// @Summary      Interview experiences
// @Tags         interviews
// @Produce      json
// @Security     BearerAuth
// @Param        company    query     string  false  "Company name"
// @Param        page       query     int     false  "Page"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.Interview]}
// @Router       /interviews [get]
func (h *InterviewHandler) List(c *gin.Context) {
	var f domain.InterviewFilter
	if !bindQuery(c, &f) {
		return
	}
	result, err := h.interviewUC.List(c.Request.Context(), f)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interviews", result)
}

// Create godoc
// @Summary      Share an interview
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CreateInterviewRequest  true  "Interview"
// @Success      201   {object}  response.Response{data=domain.Interview}
// @Failure      400   {object}  response.Response
// @Router       /interviews [post]
func (h *InterviewHandler) Create(c *gin.Context) {
	var req domain.CreateInterviewRequest
	if !bindJSON(c, &req) {
		return
	}
	iv, err := h.interviewUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Interview created", iv)
}

// CreateBulk godoc
// @Summary      Share many interviews
// @Description  All-or-nothing; a single invalid entry rejects the batch.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.BulkInterviewRequest  true  "Interviews"
// @Success      201   {object}  response.Response{data=domain.InterviewBatch}
// @Failure      400   {object}  response.Response
// @Router       /interviews/bulk [post]
func (h *InterviewHandler) CreateBulk(c *gin.Context) {
	var req domain.BulkInterviewRequest
	// Entries are validated one by one in the usecase so errors name the index.
	if !bindJSON(c, &req) {
		return
	}
	batch, err := h.interviewUC.CreateBulk(c.Request.Context(), req.Data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Interviews created", batch)
}
