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

type NewsletterHandler struct {
	newsletterUC usecase.NewsletterUsecase
	pages        *pages
}

// NewsletterRequest is the JSON body of POST /v1/contact/newsletter
type NewsletterRequest struct {
	FormID string `json:"form_id" example:"3f1c9a52-6d0e-4c55-9a57-2f7a1b8e4d10"`
	Email  string `json:"email" example:"jane@example.com"`
}

// NewNewsletterHandler registers the newsletter page and API
func NewNewsletterHandler(site, api *gin.RouterGroup, newsletterUC usecase.NewsletterUsecase, p *pages) {
	handler := &NewsletterHandler{
		newsletterUC: newsletterUC,
		pages:        p,
	}

	site.GET("/newsletter", handler.ShowForm)
	site.POST("/newsletter", handler.SubmitForm)

	api.POST("/contact/newsletter", handler.Subscribe)
}

func (h *NewsletterHandler) ShowForm(c *gin.Context) {
	h.render(c, http.StatusOK, uuid.NewString(), h.newsletterUC.NewForm())
}

// SubmitForm handles the footer form post from any page.
func (h *NewsletterHandler) SubmitForm(c *gin.Context) {
	id := formID(c.PostForm("form_id"))
	f := h.newsletterUC.NewForm()
	_ = f.SetField(domain.FieldEmail, c.PostForm(string(domain.FieldEmail)))

	_, err := h.newsletterUC.Subscribe(c.Request.Context(), id, f)
	status, next := outcome(err, id)
	h.render(c, status, next, f)
}

func (h *NewsletterHandler) render(c *gin.Context, status int, id string, f *form.Newsletter) {
	view := h.pages.page(c, "Newsletter")
	view.Newsletter = h.pages.form(id, f)
	view.NewsletterInline = true
	c.HTML(status, "newsletter.tmpl", view)
}

// Subscribe godoc
// @Summary      Subscribe to the newsletter
// @Description  Validate an email address and register it with the EASI backend. This is a public endpoint.
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        newsletter  body      NewsletterRequest  true  "Newsletter sign-up"
// @Success      200         {object}  response.Response{data=SubmissionResult}
// @Failure      400         {object}  response.Response
// @Failure      409         {object}  response.Response
// @Failure      502         {object}  response.Response
// @Router       /contact/newsletter [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	f := h.newsletterUC.NewForm()
	_ = f.SetField(domain.FieldEmail, req.Email)

	if _, err := h.newsletterUC.Subscribe(c.Request.Context(), formID(req.FormID), f); err != nil {
		c.Error(apiError(err, form.MsgNewsletterInvalid, form.MsgNewsletterFailed, form.MsgPending))
		return
	}

	response.Success(c, http.StatusOK, form.MsgNewsletterSent, SubmissionResult{
		Status:     f.Status().Kind.String(),
		NextFormID: uuid.NewString(),
	})
}
