package v1

import (
	"net/http"

	"alumni-network-backend/internal/delivery/http/response"
	"alumni-network-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ProcessHandler struct {
	processUC domain.ProcessUsecase
}

func NewProcessHandler(protected *gin.RouterGroup, processUC domain.ProcessUsecase) {
	handler := &ProcessHandler{processUC: processUC}

	protected.GET("/companies/:name/processes", handler.CompanyProcess)
	protected.POST("/companies/:name/processes/positions", handler.CreatePosition)

	processes := protected.Group("/processes")
	{
		processes.GET("", handler.AllProcesses)
		processes.POST("/positions/:id/rounds", handler.CreateRound)
		processes.POST("/rounds/:id/tips", handler.CreateTip)
		processes.DELETE("/tips/:id", handler.DeleteTip)
	}
}

// CompanyProcess godoc
// @Summary      Interview process of a company
// @Description  Positions by title, rounds by sequence, tips by creation.
// @Tags         processes
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Company name"
// @Success      200   {object}  response.Response{data=domain.CompanyProcess}
// @Failure      404   {object}  response.Response
// @Router       /companies/{name}/processes [get]
func (h *ProcessHandler) CompanyProcess(c *gin.Context) {
	process, err := h.processUC.CompanyProcess(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview process", process)
}

// AllProcesses godoc
// @Summary      Interview processes of every company
// @Tags         processes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]domain.CompanyProcess}
// @Router       /processes [get]
func (h *ProcessHandler) AllProcesses(c *gin.Context) {
	processes, err := h.processUC.AllProcesses(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview processes", processes)
}

// CreatePosition godoc
// @Summary      Add a position
// @Tags         processes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string                        true  "Company name"
// @Param        body  body      domain.CreatePositionRequest  true  "Position"
// @Success      201   {object}  response.Response{data=domain.InterviewPosition}
// @Failure      409   {object}  response.Response
// @Router       /companies/{name}/processes/positions [post]
func (h *ProcessHandler) CreatePosition(c *gin.Context) {
	var req domain.CreatePositionRequest
	if !bindJSON(c, &req) {
		return
	}
	position, err := h.processUC.CreatePosition(c.Request.Context(), c.Param("name"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Position created", position)
}

// CreateRound godoc
// @Summary      Add a round
// @Description  Difficulty is Easy, Medium (default) or Hard. Rounds are numbered in creation order.
// @Tags         processes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                        true  "Position ID"
// @Param        body  body      domain.CreateRoundRequest  true  "Round"
// @Success      201   {object}  response.Response{data=domain.InterviewRound}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /processes/positions/{id}/rounds [post]
func (h *ProcessHandler) CreateRound(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req domain.CreateRoundRequest
	if !bindJSON(c, &req) {
		return
	}
	round, err := h.processUC.CreateRound(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Round created", round)
}

// CreateTip godoc
// @Summary      Add a tip
// @Tags         processes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                      true  "Round ID"
// @Param        body  body      domain.CreateTipRequest  true  "Tip (at most 1000 characters)"
// @Success      201   {object}  response.Response{data=domain.InterviewTip}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /processes/rounds/{id}/tips [post]
func (h *ProcessHandler) CreateTip(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req domain.CreateTipRequest
	if !bindJSON(c, &req) {
		return
	}
	tip, err := h.processUC.CreateTip(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Tip created", tip)
}

// DeleteTip godoc
// @Summary      Delete a tip
// @Description  Allowed for the author and admins.
// @Tags         processes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tip ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /processes/tips/{id} [delete]
func (h *ProcessHandler) DeleteTip(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.processUC.DeleteTip(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tip deleted", nil)
}
