package v1

import (
	"net/http"

	"easi-website/internal/delivery/http/response"
	"easi-website/internal/domain"
	"easi-website/internal/form"
	"easi-website/internal/usecase"
	"easi-website/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ContactHandler struct {
	contactUC usecase.ContactUsecase
	pages     *pages
}

// ContactRequest is the JSON body of POST /v1/contact
type ContactRequest struct {
	// FormID identifies the form instance; repeated sends of a pending instance are refused
	FormID string `json:"form_id" example:"3f1c9a52-6d0e-4c55-9a57-2f7a1b8e4d10"`
	domain.ContactSubmission
}

// NewContactHandler registers the contact page and the public contact API
func NewContactHandler(site, api *gin.RouterGroup, contactUC usecase.ContactUsecase, p *pages) {
	handler := &ContactHandler{
		contactUC: contactUC,
		pages:     p,
	}

	site.GET("/contact", handler.ShowForm)
	site.POST("/contact", handler.SubmitForm)

	api.POST("/contact", handler.SubmitContact)
}

func (h *ContactHandler) ShowForm(c *gin.Context) {
	h.render(c, http.StatusOK, uuid.NewString(), h.contactUC.NewForm())
}

// SubmitForm handles the HTML form post and re-renders the page with the
// resulting status notice.
func (h *ContactHandler) SubmitForm(c *gin.Context) {
	var s domain.ContactSubmission
	if err := c.ShouldBind(&s); err != nil {
		h.pages.errorPage(c, http.StatusBadRequest, "We could not read your message. Please reload the page and try again.")
		return
	}

	id := formID(c.PostForm("form_id"))
	f := h.contactUC.NewForm()
	f.Fill(s)

	_, err := h.contactUC.Submit(c.Request.Context(), id, f)
	status, next := outcome(err, id)
	h.render(c, status, next, f)
}

func (h *ContactHandler) render(c *gin.Context, status int, id string, f *form.Contact) {
	view := h.pages.page(c, "Contact Us")
	contact := h.pages.form(id, f)
	view.Contact = &contact
	view.InquiryTypes = domain.InquiryTypes
	c.HTML(status, "contact.tmpl", view)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validate a contact message and forward it to the EASI backend. This is a public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response{data=SubmissionResult}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	f := h.contactUC.NewForm()
	f.Fill(req.ContactSubmission)

	if _, err := h.contactUC.Submit(c.Request.Context(), formID(req.FormID), f); err != nil {
		c.Error(apiError(err, form.MsgInvalid, form.MsgContactFailed, form.MsgPending))
		return
	}

	response.Success(c, http.StatusOK, form.MsgContactSent, SubmissionResult{
		Status:     f.Status().Kind.String(),
		NextFormID: uuid.NewString(),
	})
}
