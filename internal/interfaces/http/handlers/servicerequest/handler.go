package servicerequest

import (
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"servicedesk/internal/application/servicerequest/usecases"
	"servicedesk/internal/shared/constants"
	"servicedesk/internal/shared/errors"
	"servicedesk/internal/shared/id"
	"servicedesk/internal/shared/logger"
	"servicedesk/internal/shared/utils"
)

// multipartMemory is how much of a form is held in memory; larger file
// parts spill to temporary files.
const multipartMemory = 8 << 20

type Handler struct {
	createUC       usecases.CreateServiceRequestExecutor
	updateStatusUC usecases.UpdateServiceRequestStatusExecutor
	deleteUC       usecases.DeleteServiceRequestExecutor
	getUC          usecases.GetServiceRequestExecutor
	listUC         usecases.ListServiceRequestsExecutor
	downloadUC     usecases.DownloadAttachmentExecutor
	maxUploadBytes int64
	logger         logger.Interface
}

func NewHandler(
	createUC usecases.CreateServiceRequestExecutor,
	updateStatusUC usecases.UpdateServiceRequestStatusExecutor,
	deleteUC usecases.DeleteServiceRequestExecutor,
	getUC usecases.GetServiceRequestExecutor,
	listUC usecases.ListServiceRequestsExecutor,
	downloadUC usecases.DownloadAttachmentExecutor,
	maxUploadBytes int64,
	logger logger.Interface,
) *Handler {
	return &Handler{
		createUC:       createUC,
		updateStatusUC: updateStatusUC,
		deleteUC:       deleteUC,
		getUC:          getUC,
		listUC:         listUC,
		downloadUC:     downloadUC,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func callerFrom(c *gin.Context) (usecases.Caller, error) {
	userID, role, err := utils.GetCaller(c)
	if err != nil {
		return usecases.Caller{}, err
	}
	return usecases.Caller{UserID: userID, Role: role}, nil
}

// CreateServiceRequest handles POST /service-requests
//
//	@Summary		Create a service request
//	@Description	Customers submit a request with optional attachments; a support staff member is assigned at random.
//	@Tags			service-requests
//	@Accept			multipart/form-data
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			title			formData	string	true	"Title, at least 5 characters"
//	@Param			description		formData	string	true	"Description in markdown, at least 10 characters"
//	@Param			service_type	formData	string	true	"installation, maintenance or repair"
//	@Param			attachments		formData	file	false	"Attachment, may be repeated"
//	@Success		201				{object}	utils.APIResponse{data=dto.ServiceRequestDTO}
//	@Failure		400				{object}	utils.APIResponse	"Validation error"
//	@Failure		401				{object}	utils.APIResponse	"Unauthorized"
//	@Failure		403				{object}	utils.APIResponse	"Caller is not a customer"
//	@Failure		500				{object}	utils.APIResponse	"Internal server error"
//	@Router			/service-requests [post]
func (h *Handler) CreateServiceRequest(c *gin.Context) {
	caller, err := callerFrom(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var req CreateServiceRequestRequest
	var files []*multipart.FileHeader
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
			h.logger.Warnw("invalid multipart body for create service request", "error", err)
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid multipart form", err.Error()))
			return
		}
		defer func() { _ = c.Request.MultipartForm.RemoveAll() }()
		files = append(c.Request.MultipartForm.File["attachments"], c.Request.MultipartForm.File["attachments[]"]...)
	}
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warnw("invalid request body for create service request", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand(caller, files))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Service request created successfully")
}

// ListServiceRequests handles GET /service-requests
//
//	@Summary		List service requests
//	@Description	Customers see their own requests, support staff the requests assigned to them. Newest first.
//	@Tags			service-requests
//	@Produce		json
//	@Security		Bearer
//	@Param			page		query		int	false	"Page number, default 1"
//	@Param			page_size	query		int	false	"Page size, default 10, max 100"
//	@Success		200			{object}	utils.APIResponse{data=utils.ListResponse{items=[]dto.ServiceRequestDTO}}
//	@Failure		401			{object}	utils.APIResponse	"Unauthorized"
//	@Failure		403			{object}	utils.APIResponse	"Role may not list requests"
//	@Router			/service-requests [get]
func (h *Handler) ListServiceRequests(c *gin.Context) {
	caller, err := callerFrom(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	page := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListServiceRequestsQuery{
		Caller:   caller,
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize, result.TotalPages)
}

// GetServiceRequest handles GET /service-requests/:id
//
//	@Summary		Get a service request
//	@Description	Returns the request with its attachments and the description rendered as HTML. Only the owning customer may read it.
//	@Tags			service-requests
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string	true	"Service request ID"
//	@Success		200	{object}	utils.APIResponse{data=dto.ServiceRequestDTO}
//	@Failure		404	{object}	utils.APIResponse	"Not found"
//	@Router			/service-requests/{id} [get]
func (h *Handler) GetServiceRequest(c *gin.Context) {
	caller, err := callerFrom(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixServiceRequest, "Service request")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetServiceRequestQuery{
		Caller:     caller,
		RequestSID: sid,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateServiceRequestStatus handles PATCH /service-requests/:id/status
//
//	@Summary		Update a service request's status
//	@Description	Only the assigned support staff member may change the status.
//	@Tags			service-requests
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		string				true	"Service request ID"
//	@Param			status	body		UpdateStatusRequest	true	"New status"
//	@Success		200		{object}	utils.APIResponse{data=usecases.UpdateServiceRequestStatusResult}
//	@Failure		400		{object}	utils.APIResponse	"Invalid status"
//	@Failure		403		{object}	utils.APIResponse	"Caller is not support staff"
//	@Failure		404		{object}	utils.APIResponse	"Not found or not assigned to caller"
//	@Router			/service-requests/{id}/status [patch]
func (h *Handler) UpdateServiceRequestStatus(c *gin.Context) {
	caller, err := callerFrom(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixServiceRequest, "Service request")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update status", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateStatusUC.Execute(c.Request.Context(), usecases.UpdateServiceRequestStatusCommand{
		Caller:     caller,
		RequestSID: sid,
		Status:     req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Status updated successfully", result)
}

// DeleteServiceRequest handles DELETE /service-requests/:id
//
//	@Summary		Delete a service request
//	@Description	The owning customer may delete a request while it is still pending.
//	@Tags			service-requests
//	@Security		Bearer
//	@Param			id	path	string	true	"Service request ID"
//	@Success		204
//	@Failure		403	{object}	utils.APIResponse	"Request is no longer pending"
//	@Failure		404	{object}	utils.APIResponse	"Not found"
//	@Router			/service-requests/{id} [delete]
func (h *Handler) DeleteServiceRequest(c *gin.Context) {
	caller, err := callerFrom(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixServiceRequest, "Service request")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteServiceRequestCommand{
		Caller:     caller,
		RequestSID: sid,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// DownloadAttachment handles GET /attachments/:id/download
//
//	@Summary		Download an attachment
//	@Description	Streams the file to the request's customer or its assigned support staff.
//	@Tags			attachments
//	@Produce		octet-stream
//	@Security		Bearer
//	@Param			id	path		string	true	"Attachment ID"
//	@Success		200	{file}		file
//	@Failure		403	{object}	utils.APIResponse	"Caller may not download this file"
//	@Failure		404	{object}	utils.APIResponse	"Not found or file missing"
//	@Router			/attachments/{id}/download [get]
func (h *Handler) DownloadAttachment(c *gin.Context) {
	caller, err := callerFrom(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixAttachment, "Attachment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.downloadUC.Execute(c.Request.Context(), usecases.DownloadAttachmentQuery{
		Caller:        caller,
		AttachmentSID: sid,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer result.Content.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": result.FileName})
	if disposition == "" {
		disposition = "attachment"
	}

	c.DataFromReader(http.StatusOK, result.Size, result.ContentType, result.Content, map[string]string{
		constants.HeaderContentDisposition: disposition,
	})
}
