package v1

import (
	"net/http"

	"alumni-network-backend/internal/delivery/http/middleware"
	"alumni-network-backend/internal/delivery/http/response"
	"alumni-network-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
}

func NewCompanyHandler(protected *gin.RouterGroup, companyUC domain.CompanyUsecase) {
	handler := &CompanyHandler{companyUC: companyUC}

	companies := protected.Group("/companies")
	{
		companies.GET("", handler.List)
		companies.POST("", handler.Create)
		// Static segment takes priority over :name.
		companies.GET("/employee_counts", handler.EmployeeCounts)
		companies.GET("/:name", handler.Get)
		companies.POST("/:name/logo",
			middleware.RequireAdmin(),
			middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig()),
			handler.UploadLogo,
		)
		companies.GET("/:name/current_employees", handler.CurrentEmployees)
		companies.GET("/:name/all_employees", handler.AllEmployees)
	}
}

// List godoc
// @Summary      Companies
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.Company]}
// @Router       /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	var p domain.Pagination
	if !bindQuery(c, &p) {
		return
	}
	result, err := h.companyUC.List(c.Request.Context(), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Companies", result)
}

// Create godoc
// @Summary      Create a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CreateCompanyRequest  true  "Company"
// @Success      201   {object}  response.Response{data=domain.Company}
// @Failure      409   {object}  response.Response
// @Router       /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var req domain.CreateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}
	company, err := h.companyUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Company created", company)
}

// Get godoc
// @Summary      Company by name
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Company name"
// @Success      200   {object}  response.Response{data=domain.Company}
// @Failure      404   {object}  response.Response
// @Router       /companies/{name} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companyUC.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company", company)
}

// UploadLogo godoc
// @Summary      Upload company logo
// @Tags         companies
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Company name"
// @Param        file  formData  file    true  "Image"
// @Success      200   {object}  response.Response{data=domain.Company}
// @Failure      403   {object}  response.Response
// @Failure      503   {object}  response.Response
// @Router       /companies/{name}/logo [post]
func (h *CompanyHandler) UploadLogo(c *gin.Context) {
	filename, data, ok := readImage(c)
	if !ok {
		return
	}
	company, err := h.companyUC.UploadLogo(c.Request.Context(), c.Param("name"), filename, data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Logo updated", company)
}

// EmployeeCounts godoc
// @Summary      Employee count per company
// @Description  Users whose current company matches, most employees first.
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]domain.EmployeeCount}
// @Router       /companies/employee_counts [get]
func (h *CompanyHandler) EmployeeCounts(c *gin.Context) {
	counts, err := h.companyUC.EmployeeCounts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employee counts", counts)
}

// CurrentEmployees godoc
// @Summary      Current employees
// @Description  Active users whose current company matches, excluding the caller.
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        name       path      string  true   "Company name"
// @Param        page       query     int     false  "Page"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.PublicProfile]}
// @Router       /companies/{name}/current_employees [get]
func (h *CompanyHandler) CurrentEmployees(c *gin.Context) {
	var p domain.Pagination
	if !bindQuery(c, &p) {
		return
	}
	result, err := h.companyUC.CurrentEmployees(c.Request.Context(), c.Param("name"), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current employees", result)
}

// AllEmployees godoc
// @Summary      Past and present employees
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        name       path      string  true   "Company name"
// @Param        page       query     int     false  "Page"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.PublicProfile]}
// @Router       /companies/{name}/all_employees [get]
func (h *CompanyHandler) AllEmployees(c *gin.Context) {
	var p domain.Pagination
	if !bindQuery(c, &p) {
		return
	}
	result, err := h.companyUC.AllEmployees(c.Request.Context(), c.Param("name"), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "All employees", result)
}
