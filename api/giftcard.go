package api

import (
	"errors"
	"net/http"

	"github.com/Amity808/crypt-bappgift/api/apistrings"
	apimodels "github.com/Amity808/crypt-bappgift/api/models"
	"github.com/Amity808/crypt-bappgift/models"
	"github.com/Amity808/crypt-bappgift/providers"
	"github.com/Amity808/crypt-bappgift/providers/ai"
	"github.com/Amity808/crypt-bappgift/providers/chain"
	"github.com/Amity808/crypt-bappgift/services/draft"
	"github.com/Amity808/crypt-bappgift/services/giftcard"
	"github.com/gin-gonic/gin"
)

type GiftCard struct {
	server  *Server
	service *giftcard.GiftcardService
}

func (g GiftCard) router(server *Server) {
	g.server = server

	var textGen giftcard.TextGenerator
	if p, ok := server.provider.GetProvider(providers.Gemini); ok {
		if gp, ok := p.(*ai.GeminiProvider); ok {
			textGen = gp
		}
	}

	g.service = giftcard.NewGiftcardService(
		server.queries,
		server.logger,
		server.redis,
		server.config,
		server.chain,
		server.mailer,
		textGen,
		server.drafts,
	)

	serverGroup := server.router.Group("/api/v1/giftcard")
	serverGroup.GET("networks", g.listNetworks)
	serverGroup.POST("draft", g.openDraft)
	serverGroup.GET("draft/:sessionId", g.getDraft)
	serverGroup.PATCH("draft/:sessionId", g.updateDraft)
	serverGroup.DELETE("draft/:sessionId", g.closeDraft)
	serverGroup.POST("create", g.createGiftCard)
	serverGroup.POST("message", g.generateMessage)
	serverGroup.GET("card/:cardId", g.getGiftCard)
	serverGroup.POST("card/:cardId/claim", g.claimGiftCard)
	serverGroup.GET("by-email", g.listGiftCardsByEmail)
}

func (g *GiftCard) listNetworks(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewSuccess("Supported networks", chain.SupportedNetworks))
}

func (g *GiftCard) openDraft(c *gin.Context) {
	sessionID, d := g.server.drafts.Open()
	c.JSON(http.StatusCreated, models.NewSuccess("Draft session created", apimodels.ToDraftSessionResponse(sessionID, d)))
}

func (g *GiftCard) getDraft(c *gin.Context) {
	sessionID := c.Param("sessionId")

	d, err := g.server.drafts.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.NewError(apistrings.DraftNotFound))
		return
	}

	c.JSON(http.StatusOK, models.NewSuccess("Draft session", apimodels.ToDraftSessionResponse(sessionID, d)))
}

func (g *GiftCard) updateDraft(c *gin.Context) {
	sessionID := c.Param("sessionId")

	req := apimodels.UpdateDraftRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidDraftInput))
		return
	}

	d, err := g.server.drafts.Apply(sessionID, draft.Update{Field: req.Field, Value: req.Value})
	if err != nil {
		if errors.Is(err, draft.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, models.NewError(apistrings.DraftNotFound))
			return
		}
		// field-level rejections carry their own user-facing message
		c.JSON(http.StatusBadRequest, models.NewError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, models.NewSuccess("Draft updated", apimodels.ToDraftSessionResponse(sessionID, d)))
}

func (g *GiftCard) closeDraft(c *gin.Context) {
	g.server.drafts.Close(c.Param("sessionId"))
	c.JSON(http.StatusOK, models.NewSuccess("Draft session closed", nil))
}

func (g *GiftCard) createGiftCard(c *gin.Context) {
	req := apimodels.CreateGiftCardRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidDraftInput))
		return
	}

	result, err := g.service.CreateFromDraft(c.Request.Context(), req.SessionID)
	if err != nil {
		status, message := createErrorStatus(err)
		c.JSON(status, models.NewError(message))
		return
	}

	c.JSON(http.StatusCreated, models.NewSuccess("Gift card created", result))
}

func createErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, draft.ErrSessionNotFound):
		return http.StatusNotFound, apistrings.DraftNotFound
	case errors.Is(err, draft.ErrSubmitInFlight):
		return http.StatusConflict, apistrings.SubmitInFlight
	case errors.Is(err, giftcard.ErrRecipientNameRequired):
		return http.StatusBadRequest, apistrings.RecipientNameRequired
	case errors.Is(err, giftcard.ErrInvalidRecipientAddress):
		return http.StatusBadRequest, apistrings.InvalidRecipient
	case errors.Is(err, giftcard.ErrInvalidEmail):
		return http.StatusBadRequest, apistrings.InvalidEmail
	case errors.Is(err, giftcard.ErrInvalidAmount), errors.Is(err, giftcard.ErrAmountPrecision):
		return http.StatusBadRequest, apistrings.InvalidAmount
	case errors.Is(err, draft.ErrMessageTooLong):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, giftcard.ErrUnsupportedNetwork):
		return http.StatusBadRequest, apistrings.SwitchNetwork
	case errors.Is(err, giftcard.ErrCreationFailed):
		return http.StatusBadGateway, apistrings.CreationFailed
	default:
		return http.StatusInternalServerError, apistrings.ServerError
	}
}

func (g *GiftCard) generateMessage(c *gin.Context) {
	req := apimodels.GenerateMessageRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidDraftInput))
		return
	}

	message, err := g.service.GenerateMessage(req.Prompt)
	if err != nil {
		if errors.Is(err, giftcard.ErrAIUnavailable) {
			c.JSON(http.StatusServiceUnavailable, models.NewError(apistrings.AIUnavailable))
			return
		}
		c.JSON(http.StatusBadGateway, models.NewError(apistrings.AIFailed))
		return
	}

	c.JSON(http.StatusOK, models.NewSuccess("Message generated", apimodels.GenerateMessageResponse{Message: message}))
}

func (g *GiftCard) getGiftCard(c *gin.Context) {
	cardID := c.Param("cardId")

	details, err := g.service.GetCard(c.Request.Context(), cardID)
	if err != nil {
		status, message := claimErrorStatus(err)
		c.JSON(status, models.NewError(message))
		return
	}

	// warm the prepared call so the claim that usually follows is instant
	if !details.Chain.Redeemed {
		if err := g.service.PrepareClaim(c.Request.Context(), cardID); err != nil {
			g.server.logger.Error("could not prepare claim for card " + cardID + ": " + err.Error())
		}
	}

	c.JSON(http.StatusOK, models.NewSuccess("Gift card", apimodels.ToGiftCardResponse(details)))
}

func (g *GiftCard) listGiftCardsByEmail(c *gin.Context) {
	rows, err := g.service.ListCardsByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		if errors.Is(err, giftcard.ErrInvalidEmail) {
			c.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidEmail))
			return
		}
		c.JSON(http.StatusInternalServerError, models.NewError(apistrings.LookupFailed))
		return
	}

	c.JSON(http.StatusOK, models.NewSuccess("Gift cards", apimodels.ToGiftCardRecordList(rows)))
}

func (g *GiftCard) claimGiftCard(c *gin.Context) {
	cardID := c.Param("cardId")

	req := apimodels.ClaimGiftCardRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidClaimToken))
		return
	}

	result, err := g.service.Claim(c.Request.Context(), cardID, req.ClaimToken)
	if err != nil {
		status, message := claimErrorStatus(err)
		c.JSON(status, models.NewError(message))
		return
	}

	c.JSON(http.StatusOK, models.NewSuccess("Gift card claimed", result))
}

func claimErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, giftcard.ErrCardNotFound):
		return http.StatusNotFound, apistrings.CardNotFound
	case errors.Is(err, giftcard.ErrAlreadyClaimed):
		return http.StatusGone, apistrings.AlreadyClaimed
	case errors.Is(err, giftcard.ErrInvalidClaimToken):
		return http.StatusUnauthorized, apistrings.InvalidClaimToken
	case errors.Is(err, giftcard.ErrSimulationPending):
		return http.StatusConflict, apistrings.ClaimNotReady
	case errors.Is(err, giftcard.ErrUnsupportedNetwork):
		return http.StatusBadRequest, apistrings.SwitchNetwork
	case errors.Is(err, giftcard.ErrClaimFailed):
		return http.StatusBadGateway, apistrings.ClaimFailed
	default:
		return http.StatusInternalServerError, apistrings.ServerError
	}
}
