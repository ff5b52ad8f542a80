// Package server exposes the ledger over a JSON HTTP API. The transport is
// glue around the engine: handlers validate input, provision members, call
// the services and translate errors to status codes.
package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/AlexaLeb/MoneyShare/internal/auth"
	"github.com/AlexaLeb/MoneyShare/internal/ledger"
	"github.com/AlexaLeb/MoneyShare/internal/models"
	"github.com/AlexaLeb/MoneyShare/internal/service"
	"github.com/AlexaLeb/MoneyShare/internal/storage"
)

// Handler bundles the services behind the HTTP routes.
type Handler struct {
	auth       *service.AuthService
	ledger     *service.LedgerService
	settlement *service.SettlementService
	provision  *service.ProvisionService
}

// NewHandler creates the API handler.
func NewHandler(authSvc *service.AuthService, ledgerSvc *service.LedgerService, settlementSvc *service.SettlementService, provisionSvc *service.ProvisionService) *Handler {
	return &Handler{
		auth:       authSvc,
		ledger:     ledgerSvc,
		settlement: settlementSvc,
		provision:  provisionSvc,
	}
}

type registerRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type ensureChatRequest struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type createTransactionRequest struct {
	Amount       float64 `json:"amount"`
	Title        string  `json:"title"`
	Participants []int64 `json:"participant_ids"`
}

type addParticipantRequest struct {
	UserID      int64   `json:"user_id"`
	ShareAmount float64 `json:"share_amount"`
	Tag         string  `json:"tag"`
}

type shareResponse struct {
	ID          string  `json:"id"`
	UserID      int64   `json:"user_id"`
	ShareAmount float64 `json:"share_amount"`
	Tag         string  `json:"tag"`
}

type transactionResponse struct {
	ID        string          `json:"id"`
	ChatID    int64           `json:"chat_id"`
	CreatorID int64           `json:"creator_id"`
	Amount    float64         `json:"amount"`
	Title     string          `json:"title,omitempty"`
	CreatedAt int64           `json:"created_at"`
	Shares    []shareResponse `json:"shares"`
}

type balanceResponse struct {
	UserID    int64   `json:"user_id"`
	Amount    float64 `json:"amount"`
	UpdatedAt int64   `json:"updated_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, FirstName: u.FirstName}
}

func toShareResponses(shares []*models.ParticipantShare) []shareResponse {
	out := make([]shareResponse, len(shares))
	for i, s := range shares {
		out[i] = shareResponse{ID: s.ID, UserID: s.UserID, ShareAmount: s.ShareAmount, Tag: s.Tag}
	}
	return out
}

// httpError maps service and storage errors onto status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrNoParticipants),
		errors.Is(err, ledger.ErrNotFinite),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrUsernameRequired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrUsernameExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func chatIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid chat id")
	}
	return id, nil
}

// Register handles POST /auth/register.
func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	user, token, err := h.auth.Register(c.Request().Context(), req.Username, req.FirstName, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, sessionResponse{User: toUserResponse(user), Token: token})
}

// Login handles POST /auth/login.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	user, token, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sessionResponse{User: toUserResponse(user), Token: token})
}

// EnsureChat handles POST /chats: create-or-refresh provisioning.
func (h *Handler) EnsureChat(c echo.Context) error {
	var req ensureChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if req.ID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "chat id required")
	}

	chat, err := h.provision.EnsureChat(c.Request().Context(), req.ID, req.Title)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, chat)
}

// CreateTransaction handles POST /chats/:id/transactions. The authenticated
// user is the creator; the amount is split equally across the participants,
// all of whom are provisioned on first sight.
func (h *Handler) CreateTransaction(c echo.Context) error {
	chatID, err := chatIDParam(c)
	if err != nil {
		return err
	}

	var req createTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	ctx := c.Request().Context()
	if _, err := h.provision.EnsureChat(ctx, chatID, ""); err != nil {
		return httpError(err)
	}
	for _, userID := range req.Participants {
		if _, err := h.provision.EnsureUser(ctx, userID, "", ""); err != nil {
			return httpError(err)
		}
	}

	tx, shares, err := h.ledger.CreateTransactionSplit(ctx, chatID, UserID(c), req.Amount, req.Title, req.Participants)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, transactionResponse{
		ID:        tx.ID,
		ChatID:    tx.ChatID,
		CreatorID: tx.CreatorID,
		Amount:    tx.Amount,
		Title:     tx.Title,
		CreatedAt: tx.CreatedAt,
		Shares:    toShareResponses(shares),
	})
}

// History handles GET /chats/:id/transactions.
func (h *Handler) History(c echo.Context) error {
	chatID, err := chatIDParam(c)
	if err != nil {
		return err
	}

	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	log, err := h.ledger.History(c.Request().Context(), chatID, limit)
	if err != nil {
		return httpError(err)
	}

	out := make([]transactionResponse, len(log))
	for i, entry := range log {
		out[i] = transactionResponse{
			ID:        entry.Transaction.ID,
			ChatID:    entry.Transaction.ChatID,
			CreatorID: entry.Transaction.CreatorID,
			Amount:    entry.Transaction.Amount,
			Title:     entry.Transaction.Title,
			CreatedAt: entry.Transaction.CreatedAt,
			Shares:    toShareResponses(entry.Shares),
		}
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteTransaction handles DELETE /transactions/:id.
func (h *Handler) DeleteTransaction(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "transaction id required")
	}
	if err := h.ledger.DeleteTransaction(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddParticipant handles POST /transactions/:id/participants.
func (h *Handler) AddParticipant(c echo.Context) error {
	txID := c.Param("id")
	if txID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "transaction id required")
	}

	var req addParticipantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	ctx := c.Request().Context()
	if _, err := h.provision.EnsureUser(ctx, req.UserID, "", ""); err != nil {
		return httpError(err)
	}

	share, err := h.ledger.AddParticipant(ctx, txID, req.UserID, req.ShareAmount, req.Tag)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, shareResponse{
		ID:          share.ID,
		UserID:      share.UserID,
		ShareAmount: share.ShareAmount,
		Tag:         share.Tag,
	})
}

// RemoveParticipant handles DELETE /participants/:id.
func (h *Handler) RemoveParticipant(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "participant id required")
	}
	if err := h.ledger.RemoveParticipant(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Balances handles GET /chats/:id/balances.
func (h *Handler) Balances(c echo.Context) error {
	chatID, err := chatIDParam(c)
	if err != nil {
		return err
	}

	balances, err := h.settlement.Balances(c.Request().Context(), chatID)
	if err != nil {
		return httpError(err)
	}

	out := make([]balanceResponse, len(balances))
	for i, b := range balances {
		out[i] = balanceResponse{UserID: b.UserID, Amount: b.Amount, UpdatedAt: b.UpdatedAt}
	}
	return c.JSON(http.StatusOK, out)
}

// Settlement handles GET /chats/:id/settlement.
func (h *Handler) Settlement(c echo.Context) error {
	chatID, err := chatIDParam(c)
	if err != nil {
		return err
	}

	transfers, err := h.settlement.Plan(c.Request().Context(), chatID)
	if err != nil {
		return httpError(err)
	}
	if transfers == nil {
		transfers = []models.Transfer{}
	}
	return c.JSON(http.StatusOK, transfers)
}
