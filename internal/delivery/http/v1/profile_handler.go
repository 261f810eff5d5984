package v1

import (
	"net/http"

	"go-resume-backend/internal/delivery/http/response"
	"go-resume-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(r *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	profiles := r.Group("/profiles")
	{
		profiles.GET("/me/draft", handler.GetDraft)
		profiles.POST("/me/submit", handler.Submit)
	}
}

// GetDraft godoc
// @Summary      Get the profile draft
// @Description  Returns the profile together with all visible section records
// @Tags         draft
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ProfileDraft}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profiles/me/draft [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetDraft(c *gin.Context) {
	profileID := c.GetInt64(string(domain.KeyProfileID))

	draft, err := h.profileUC.GetDraft(c, profileID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile draft", draft)
}

// Submit godoc
// @Summary      Submit the profile
// @Description  Flips the profile from draft to submitted. Idempotent: re-submitting reports the current status.
// @Tags         draft
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.SubmitResult}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profiles/me/submit [post]
// @Security     BearerAuth
func (h *ProfileHandler) Submit(c *gin.Context) {
	profileID := c.GetInt64(string(domain.KeyProfileID))

	result, err := h.profileUC.Submit(c, profileID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile status", result)
}
