package giftcard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	db "github.com/Amity808/crypt-bappgift/db/sqlc"
	"github.com/Amity808/crypt-bappgift/providers/chain"
	"github.com/Amity808/crypt-bappgift/services/draft"
	"github.com/Amity808/crypt-bappgift/services/monitoring/logging"
	service "github.com/Amity808/crypt-bappgift/services/notification"
	"github.com/Amity808/crypt-bappgift/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// Mailer delivers the claim email. Satisfied by *service.Plunk.
type Mailer interface {
	SendClaimEmail(to string, data service.ClaimEmailData) error
}

// Directory is the persistent record of cards created through this service.
// Satisfied by *db.Store.
type Directory interface {
	CreateGiftCard(ctx context.Context, arg db.CreateGiftCardParams) (db.GiftCard, error)
	GetGiftCard(ctx context.Context, cardID string) (db.GiftCard, error)
	ListGiftCardsByEmail(ctx context.Context, recipientEmail string) ([]db.GiftCard, error)
	MarkGiftCardRedeemed(ctx context.Context, cardID string) (db.GiftCard, error)
}

// SnapshotCache caches on-chain card snapshots. Satisfied by
// *redis.RedisService.
type SnapshotCache interface {
	StoreGiftCardSnapshot(ctx context.Context, card *chain.GiftCard) error
	GetGiftCardSnapshot(ctx context.Context, cardID string) (*chain.GiftCard, error)
	InvalidateGiftCardSnapshot(ctx context.Context, cardID string) error
}

// TextGenerator produces a short personalised message. Satisfied by
// *ai.GeminiProvider.
type TextGenerator interface {
	Available() bool
	GenerateContent(prompt string) (string, error)
}

// claimSigner mints and verifies the redemption tokens embedded in claim
// emails. Satisfied by *utils.ClaimToken.
type claimSigner interface {
	CreateToken(claim utils.ClaimObject) (string, error)
	VerifyToken(tokenString string) (utils.ClaimObject, error)
}

type GiftcardService struct {
	store    Directory
	logger   *logging.Logger
	redis    SnapshotCache
	config   *utils.Config
	chain    chain.Client
	mailer   Mailer
	ai       TextGenerator
	drafts   *draft.Service
	tokens   claimSigner
	prepared *cache.Cache
	validate *validator.Validate
}

func NewGiftcardService(
	store Directory,
	logger *logging.Logger,
	redisService SnapshotCache,
	config *utils.Config,
	chainClient chain.Client,
	mailer Mailer,
	textGen TextGenerator,
	drafts *draft.Service,
) *GiftcardService {
	return &GiftcardService{
		store:  store,
		logger: logger,
		redis:  redisService,
		config: config,
		chain:  chainClient,
		mailer: mailer,
		ai:     textGen,
		drafts: drafts,
		tokens: utils.NewClaimToken(config),
		// prepared redemption calls are short-lived, a stale one would carry
		// an outdated gas estimate
		prepared: cache.New(2*time.Minute, 5*time.Minute),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateResult is what the creation flow hands back to the API layer.
type CreateResult struct {
	CardID     string `json:"card_id"`
	TxHash     string `json:"tx_hash"`
	ClaimLink  string `json:"claim_link"`
	EmailSent  bool   `json:"email_sent"`
	EmailError string `json:"email_error,omitempty"`
}

type ClaimResult struct {
	CardID string `json:"card_id"`
	TxHash string `json:"tx_hash"`
}

// CardDetails combines the on-chain snapshot with the directory row, when one
// exists.
type CardDetails struct {
	Chain     *chain.GiftCard `json:"chain"`
	Directory *db.GiftCard    `json:"directory,omitempty"`
}

// ToSmallestUnit converts a decimal amount into the token's integer base
// unit. Residue below the unit scale is an error, never silently truncated.
func ToSmallestUnit(amount string, decimals int) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, ErrInvalidAmount
	}
	if d.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	shifted := d.Shift(int32(decimals))
	if !shifted.IsInteger() {
		return nil, ErrAmountPrecision
	}

	return shifted.BigInt(), nil
}

// CreateFromDraft submits the draft session: validates it, escrows the funds
// on chain, records the card in the directory, emails the claim link, and
// resets the draft. Email failure is reported but never rolls back creation.
func (g *GiftcardService) CreateFromDraft(ctx context.Context, sessionID string) (*CreateResult, error) {
	if err := g.drafts.BeginSubmit(sessionID); err != nil {
		return nil, err
	}
	defer g.drafts.EndSubmit(sessionID)

	d, err := g.drafts.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if err := g.validateDraft(d); err != nil {
		return nil, err
	}

	amount, err := ToSmallestUnit(d.Amount, g.config.TokenDecimals)
	if err != nil {
		return nil, err
	}

	created, err := g.chain.CreateGiftCard(ctx, chain.CreateGiftCardRequest{
		Recipient: d.RecipientAddress,
		Amount:    amount,
		Mail:      d.MailAddress,
	})
	if err != nil {
		if errors.Is(err, chain.ErrUnsupportedNetwork) {
			return nil, NewGiftcardError(ErrUnsupportedNetwork, "", err)
		}
		// structured reason stays in the logs, the caller gets the generic
		// condition
		g.logger.Error(fmt.Sprintf("gift card creation failed: %v", err))
		return nil, NewGiftcardError(ErrCreationFailed, "", err)
	}

	claimLink := fmt.Sprintf("%s/claim/%s", strings.TrimRight(g.config.BaseURL, "/"), created.CardID)

	claimToken, tokenErr := g.tokens.CreateToken(utils.ClaimObject{
		CardID: created.CardID,
		Email:  d.MailAddress,
	})
	if tokenErr != nil {
		g.logger.Error(fmt.Sprintf("could not sign claim token for card %s: %v", created.CardID, tokenErr))
	}

	if _, err := g.store.CreateGiftCard(ctx, db.CreateGiftCardParams{
		CardID:           created.CardID,
		RecipientName:    d.RecipientName,
		RecipientAddress: d.RecipientAddress,
		RecipientEmail:   d.MailAddress,
		SenderAddress:    g.senderAddress(),
		Amount:           amount.String(),
		Currency:         d.Currency,
		Message:          d.Message,
		Theme:            string(d.Theme),
		ClaimLink:        claimLink,
		TxHash:           created.TxHash,
	}); err != nil {
		// the card exists on chain, a directory miss only degrades lookups
		g.logger.Error(fmt.Sprintf("could not record gift card %s: %v", created.CardID, err))
	}

	result := &CreateResult{
		CardID:    created.CardID,
		TxHash:    created.TxHash,
		ClaimLink: claimLink,
		EmailSent: true,
	}

	// an email without a usable claim code is worse than no email
	if tokenErr != nil {
		result.EmailSent = false
		result.EmailError = "claim email could not be delivered"
	} else if err := g.mailer.SendClaimEmail(d.MailAddress, service.ClaimEmailData{
		RecipientName: d.RecipientName,
		SenderAddress: g.senderAddress(),
		ClaimLink:     claimLink,
		ClaimToken:    claimToken,
		Amount:        d.Amount,
		Currency:      d.Currency,
		Message:       d.Message,
		Theme:         string(d.Theme),
	}); err != nil {
		g.logger.Error(fmt.Sprintf("claim email for card %s failed: %v", created.CardID, err))
		result.EmailSent = false
		result.EmailError = "claim email could not be delivered"
	}

	// reset to defaults regardless of the email outcome
	if _, err := g.drafts.Clear(sessionID); err != nil {
		g.logger.Error(fmt.Sprintf("could not clear draft %s: %v", sessionID, err))
	}

	return result, nil
}

func (g *GiftcardService) validateDraft(d draft.Draft) error {
	if strings.TrimSpace(d.RecipientName) == "" {
		return ErrRecipientNameRequired
	}
	if !common.IsHexAddress(d.RecipientAddress) {
		return ErrInvalidRecipientAddress
	}
	if err := g.validate.Var(d.MailAddress, "required,email"); err != nil {
		return ErrInvalidEmail
	}
	if len(d.Message) > draft.MaxMessageLength {
		return draft.NewDraftError(draft.ErrMessageTooLong, draft.FieldMessage, d.Message)
	}
	return nil
}

func (g *GiftcardService) senderAddress() string {
	return g.chain.OperatorAddress()
}

// PrepareClaim simulates the redemption and caches the prepared call so a
// following Claim can submit it unmodified.
func (g *GiftcardService) PrepareClaim(ctx context.Context, cardID string) error {
	prepared, err := g.chain.SimulateRedeem(ctx, cardID)
	if err != nil {
		return g.mapChainError(err, cardID)
	}
	if prepared == nil {
		return NewGiftcardError(ErrSimulationPending, cardID)
	}

	g.prepared.Set(cardID, prepared, cache.DefaultExpiration)
	return nil
}

// Claim redeems the card. The write always uses a simulation-produced
// prepared call; a missing one is a precondition failure, not a crash.
func (g *GiftcardService) Claim(ctx context.Context, cardID string, claimToken string) (*ClaimResult, error) {
	claim, err := g.tokens.VerifyToken(claimToken)
	if err != nil || claim.CardID != cardID {
		return nil, NewGiftcardError(ErrInvalidClaimToken, cardID)
	}

	prepared := g.preparedCall(cardID)
	if prepared == nil {
		simulated, err := g.chain.SimulateRedeem(ctx, cardID)
		if err != nil {
			return nil, g.mapChainError(err, cardID)
		}
		prepared = simulated
	}
	if prepared == nil {
		return nil, NewGiftcardError(ErrSimulationPending, cardID)
	}

	redeemed, err := g.chain.Redeem(ctx, prepared)
	if err != nil {
		return nil, g.mapChainError(err, cardID)
	}

	g.prepared.Delete(cardID)

	if _, err := g.store.MarkGiftCardRedeemed(ctx, cardID); err != nil && !errors.Is(err, sql.ErrNoRows) {
		g.logger.Error(fmt.Sprintf("could not mark card %s redeemed: %v", cardID, err))
	}

	if err := g.redis.InvalidateGiftCardSnapshot(ctx, cardID); err != nil {
		g.logger.Error(fmt.Sprintf("could not invalidate snapshot for card %s: %v", cardID, err))
	}

	return &ClaimResult{CardID: cardID, TxHash: redeemed.TxHash}, nil
}

func (g *GiftcardService) preparedCall(cardID string) *chain.PreparedCall {
	if cached, found := g.prepared.Get(cardID); found {
		if prepared, ok := cached.(*chain.PreparedCall); ok {
			return prepared
		}
	}
	return nil
}

// GetCard returns the card snapshot, served from the redis cache when fresh.
func (g *GiftcardService) GetCard(ctx context.Context, cardID string) (*CardDetails, error) {
	snapshot, err := g.redis.GetGiftCardSnapshot(ctx, cardID)
	if err != nil {
		g.logger.Error(fmt.Sprintf("snapshot cache read for card %s failed: %v", cardID, err))
	}

	if snapshot == nil {
		snapshot, err = g.chain.GetGiftCard(ctx, cardID)
		if err != nil {
			return nil, g.mapChainError(err, cardID)
		}
		if err := g.redis.StoreGiftCardSnapshot(ctx, snapshot); err != nil {
			g.logger.Error(fmt.Sprintf("snapshot cache write for card %s failed: %v", cardID, err))
		}
	}

	details := &CardDetails{Chain: snapshot}

	record, err := g.store.GetGiftCard(ctx, cardID)
	if err == nil {
		details.Directory = &record
	} else if !errors.Is(err, sql.ErrNoRows) {
		g.logger.Error(fmt.Sprintf("directory read for card %s failed: %v", cardID, err))
	}

	return details, nil
}

// ListCardsByEmail returns the directory rows for every card sent to an
// email address, newest first.
func (g *GiftcardService) ListCardsByEmail(ctx context.Context, email string) ([]db.GiftCard, error) {
	if err := g.validate.Var(email, "required,email"); err != nil {
		return nil, ErrInvalidEmail
	}

	rows, err := g.store.ListGiftCardsByEmail(ctx, email)
	if err != nil {
		g.logger.Error(fmt.Sprintf("directory list for %s failed: %v", email, err))
		return nil, NewGiftcardError(ErrLookupFailed, "", err)
	}

	return rows, nil
}

// GenerateMessage asks the text generator for a short personalised message.
func (g *GiftcardService) GenerateMessage(prompt string) (string, error) {
	if g.ai == nil || !g.ai.Available() {
		return "", ErrAIUnavailable
	}

	text, err := g.ai.GenerateContent(fmt.Sprintf("Generate a short message based on this prompt %s", prompt))
	if err != nil {
		g.logger.Error(fmt.Sprintf("message generation failed: %v", err))
		return "", NewGiftcardError(ErrAIGenerationFailed, "", err)
	}

	if len(text) > draft.MaxMessageLength {
		// cut on a rune boundary so a multibyte character is never split
		cut := draft.MaxMessageLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	return text, nil
}

func (g *GiftcardService) mapChainError(err error, cardID string) error {
	switch {
	case errors.Is(err, chain.ErrCardNotFound):
		return NewGiftcardError(ErrCardNotFound, cardID, err)
	case errors.Is(err, chain.ErrAlreadyRedeemed):
		return NewGiftcardError(ErrAlreadyClaimed, cardID, err)
	case errors.Is(err, chain.ErrUnsupportedNetwork):
		return NewGiftcardError(ErrUnsupportedNetwork, cardID, err)
	case errors.Is(err, chain.ErrNilPreparedCall):
		return NewGiftcardError(ErrSimulationPending, cardID, err)
	default:
		g.logger.Error(fmt.Sprintf("chain call for card %s failed: %v", cardID, err))
		return NewGiftcardError(ErrClaimFailed, cardID, err)
	}
}
