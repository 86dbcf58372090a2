// Package handler содержит HTTP-обработчики API сервиса VISE.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/vise-system/internal/model"
	"github.com/mmeshcher/vise-system/internal/repository"
	"github.com/mmeshcher/vise-system/internal/validation"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	RegisterClient(ctx context.Context, attrs model.ClientAttrs) (model.Client, model.EligibilityResult, error)
	GetClient(ctx context.Context, id int64) (model.Client, error)
	ListClients(ctx context.Context) ([]model.Client, error)
	UpdateClient(ctx context.Context, id int64, attrs model.ClientAttrs) (model.Client, model.EligibilityResult, error)
	DeleteClient(ctx context.Context, id int64) (bool, error)
	ProcessPurchase(ctx context.Context, p model.Purchase) (model.PurchaseResult, error)
}

// Handler реализует HTTP-обработчики API сервиса VISE.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: s,
		logger:  logger,
	}
}

const clientNotFoundDetail = "Cliente no encontrado"

type clientRequest struct {
	Name          string `json:"name"`
	Country       string `json:"country"`
	MonthlyIncome int64  `json:"monthlyIncome"`
	ViseClub      bool   `json:"viseClub"`
	CardType      string `json:"cardType"`
}

type clientResponse struct {
	ClientID int64  `json:"clientId"`
	Name     string `json:"name"`
	CardType string `json:"cardType"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

type clientView struct {
	ClientID      int64  `json:"clientId"`
	Name          string `json:"name"`
	Country       string `json:"country"`
	MonthlyIncome int64  `json:"monthlyIncome"`
	ViseClub      bool   `json:"viseClub"`
	CardType      string `json:"cardType"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

// validateClientRequest проверяет ограничения полей до вызова бизнес-логики.
func validateClientRequest(req clientRequest) string {
	switch {
	case !validation.IsValidClientField(req.Name):
		return "name must be 2..50 characters"
	case !validation.IsValidClientField(req.Country):
		return "country must be 2..50 characters"
	case req.MonthlyIncome < 0:
		return "monthlyIncome must be non-negative"
	case !validation.IsValidClientField(req.CardType):
		return "cardType must be 2..50 characters"
	}
	return ""
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) writeDetail(w http.ResponseWriter, statusCode int, detail string) {
	h.writeJSON(w, statusCode, detailResponse{Detail: detail})
}

func clientIDFromRequest(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "clientId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func toView(c model.Client) clientView {
	return clientView{
		ClientID:      c.ID,
		Name:          c.Name,
		Country:       c.Country,
		MonthlyIncome: c.MonthlyIncome,
		ViseClub:      c.ViseClub,
		CardType:      c.CardType,
	}
}

// Root возвращает краткую информацию о сервисе.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "VISE client benefits API"})
}

// RegisterClient регистрирует нового клиента и возвращает результат проверки
// соответствия уровню карты.
func (h *Handler) RegisterClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if detail := validateClientRequest(req); detail != "" {
		h.writeDetail(w, http.StatusUnprocessableEntity, detail)
		return
	}

	c, res, err := h.service.RegisterClient(r.Context(), model.ClientAttrs{
		Name:          req.Name,
		Country:       req.Country,
		MonthlyIncome: req.MonthlyIncome,
		ViseClub:      req.ViseClub,
		CardType:      req.CardType,
	})
	if err != nil {
		h.logger.Error("register client error", zap.Error(err))
		h.writeDetail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	h.writeJSON(w, http.StatusCreated, clientResponse{
		ClientID: c.ID,
		Name:     c.Name,
		CardType: c.CardType,
		Status:   string(res.Status),
		Message:  res.Message,
	})
}

// ListClients возвращает всех зарегистрированных клиентов.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.ListClients(r.Context())
	if err != nil {
		h.logger.Error("list clients error", zap.Error(err))
		h.writeDetail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	resp := make([]clientView, 0, len(clients))
	for _, c := range clients {
		resp = append(resp, toView(c))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// GetClient возвращает клиента по идентификатору.
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := clientIDFromRequest(r)
	if !ok {
		h.writeDetail(w, http.StatusBadRequest, "invalid client id")
		return
	}

	c, err := h.service.GetClient(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			h.writeDetail(w, http.StatusNotFound, clientNotFoundDetail)
			return
		}
		h.logger.Error("get client error", zap.Error(err), zap.Int64("clientId", id))
		h.writeDetail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	h.writeJSON(w, http.StatusOK, toView(c))
}

// UpdateClient полностью заменяет атрибуты клиента и возвращает свежий
// результат проверки соответствия уровню карты.
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := clientIDFromRequest(r)
	if !ok {
		h.writeDetail(w, http.StatusBadRequest, "invalid client id")
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if detail := validateClientRequest(req); detail != "" {
		h.writeDetail(w, http.StatusUnprocessableEntity, detail)
		return
	}

	c, res, err := h.service.UpdateClient(r.Context(), id, model.ClientAttrs{
		Name:          req.Name,
		Country:       req.Country,
		MonthlyIncome: req.MonthlyIncome,
		ViseClub:      req.ViseClub,
		CardType:      req.CardType,
	})
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			h.writeDetail(w, http.StatusNotFound, clientNotFoundDetail)
			return
		}
		h.logger.Error("update client error", zap.Error(err), zap.Int64("clientId", id))
		h.writeDetail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	h.writeJSON(w, http.StatusOK, clientResponse{
		ClientID: c.ID,
		Name:     c.Name,
		CardType: c.CardType,
		Status:   string(res.Status),
		Message:  res.Message,
	})
}

// DeleteClient удаляет клиента по идентификатору.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := clientIDFromRequest(r)
	if !ok {
		h.writeDetail(w, http.StatusBadRequest, "invalid client id")
		return
	}

	deleted, err := h.service.DeleteClient(r.Context(), id)
	if err != nil {
		h.logger.Error("delete client error", zap.Error(err), zap.Int64("clientId", id))
		h.writeDetail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	if !deleted {
		h.writeDetail(w, http.StatusNotFound, clientNotFoundDetail)
		return
	}

	h.writeDetail(w, http.StatusOK, "Cliente eliminado")
}

type purchaseRequest struct {
	ClientID        int64   `json:"clientId"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	PurchaseDate    string  `json:"purchaseDate"`
	PurchaseCountry string  `json:"purchaseCountry"`
}

type purchaseInfo struct {
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	PurchaseDate    string  `json:"purchaseDate"`
	PurchaseCountry string  `json:"purchaseCountry"`
	DiscountApplied int64   `json:"discountApplied"`
	FinalAmount     int64   `json:"finalAmount"`
	Benefit         string  `json:"benefit"`
}

type purchaseResponse struct {
	Status   string       `json:"status"`
	Purchase purchaseInfo `json:"purchase"`
}

// ProcessPurchase рассчитывает скидку по покупке существующего клиента.
func (h *Handler) ProcessPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Amount < 0 {
		h.writeDetail(w, http.StatusUnprocessableEntity, "amount must be non-negative")
		return
	}
	if !validation.IsValidCurrency(req.Currency) {
		h.writeDetail(w, http.StatusUnprocessableEntity, "currency is required")
		return
	}
	if !validation.IsValidPurchaseCountry(req.PurchaseCountry) {
		h.writeDetail(w, http.StatusUnprocessableEntity, "purchaseCountry must be at least 2 characters")
		return
	}

	purchaseDate, err := validation.ParsePurchaseDate(req.PurchaseDate)
	if err != nil {
		h.writeDetail(w, http.StatusUnprocessableEntity, "purchaseDate must be YYYY-MM-DD")
		return
	}

	res, err := h.service.ProcessPurchase(r.Context(), model.Purchase{
		ClientID:        req.ClientID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		PurchaseDate:    purchaseDate,
		PurchaseCountry: req.PurchaseCountry,
	})
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			h.writeDetail(w, http.StatusNotFound, clientNotFoundDetail)
			return
		}
		h.logger.Error("process purchase error", zap.Error(err), zap.Int64("clientId", req.ClientID))
		h.writeDetail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	h.writeJSON(w, http.StatusOK, purchaseResponse{
		Status: string(res.Status),
		Purchase: purchaseInfo{
			Amount:          req.Amount,
			Currency:        req.Currency,
			PurchaseDate:    req.PurchaseDate,
			PurchaseCountry: req.PurchaseCountry,
			DiscountApplied: res.Discount,
			FinalAmount:     res.FinalAmount,
			Benefit:         res.Benefit,
		},
	})
}
