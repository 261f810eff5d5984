package v1

import (
	"net/http"

	"go-resume-backend/internal/delivery/http/response"
	"go-resume-backend/internal/domain"
	"go-resume-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	draftUC domain.DraftUsecase
}

func NewDraftHandler(r *gin.RouterGroup, draftUC domain.DraftUsecase) {
	handler := &DraftHandler{draftUC: draftUC}

	profiles := r.Group("/profiles")
	{
		profiles.PUT("/me/draft", handler.SyncDraft)
	}
}

// SyncDraft godoc
// @Summary      Synchronize the profile draft
// @Description  Accepts a full snapshot of the supplied sections, atomically replaces them and recomputes derived profile attributes. Absent sections stay untouched; empty lists clear their section.
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        payload  body  domain.SyncDraftRequest  true  "Sections to synchronize"
// @Success      200  {object}  response.Response{data=domain.SyncResult}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /profiles/me/draft [put]
// @Security     BearerAuth
func (h *DraftHandler) SyncDraft(c *gin.Context) {
	profileID := c.GetInt64(string(domain.KeyProfileID))

	var req domain.SyncDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.InvalidInput("Malformed payload: " + err.Error()))
		return
	}

	// Gin Context implements context.Context and carries the auth keys
	result, err := h.draftUC.SyncDraft(c, profileID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Draft synchronized", result)
}
