// Package service реализует бизнес-логику сервиса VISE.
package service

import (
	"context"
	"time"

	"github.com/mmeshcher/vise-system/internal/audit"
	"github.com/mmeshcher/vise-system/internal/benefits"
	"github.com/mmeshcher/vise-system/internal/model"
)

// Repository описывает контракт хранилища клиентов, используемый сервисом.
type Repository interface {
	Close() error
	Register(ctx context.Context, attrs model.ClientAttrs) (model.Client, error)
	Get(ctx context.Context, id int64) (model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
	Update(ctx context.Context, id int64, attrs model.ClientAttrs) (model.Client, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Service содержит бизнес-логику сервиса VISE: регистрацию клиентов
// и обработку покупок через движок правил.
type Service struct {
	repo        Repository
	auditClient *audit.Client
	events      chan audit.Event
}

// NewService создаёт сервис с указанным хранилищем и клиентом аудита.
// Клиент аудита может быть nil, тогда события не отправляются.
func NewService(repo Repository, auditClient *audit.Client) *Service {
	return &Service{
		repo:        repo,
		auditClient: auditClient,
		events:      make(chan audit.Event, 256),
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// RegisterClient сохраняет клиента и проверяет его соответствие заявленному
// уровню карты. Результат проверки не сохраняется и пересчитывается
// при каждом обращении.
func (s *Service) RegisterClient(ctx context.Context, attrs model.ClientAttrs) (model.Client, model.EligibilityResult, error) {
	c, err := s.repo.Register(ctx, attrs)
	if err != nil {
		return model.Client{}, model.EligibilityResult{}, err
	}

	res := benefits.EvaluateEligibility(c.CardType, c.MonthlyIncome, c.ViseClub, c.Country)

	s.emit("client.registered", map[string]any{
		"clientId": c.ID,
		"cardType": c.CardType,
		"status":   string(res.Status),
	})

	return c, res, nil
}

// GetClient возвращает клиента по идентификатору.
func (s *Service) GetClient(ctx context.Context, id int64) (model.Client, error) {
	return s.repo.Get(ctx, id)
}

// ListClients возвращает всех зарегистрированных клиентов.
func (s *Service) ListClients(ctx context.Context) ([]model.Client, error) {
	return s.repo.List(ctx)
}

// UpdateClient полностью заменяет атрибуты клиента и заново проверяет
// соответствие уровню карты.
func (s *Service) UpdateClient(ctx context.Context, id int64, attrs model.ClientAttrs) (model.Client, model.EligibilityResult, error) {
	c, err := s.repo.Update(ctx, id, attrs)
	if err != nil {
		return model.Client{}, model.EligibilityResult{}, err
	}

	res := benefits.EvaluateEligibility(c.CardType, c.MonthlyIncome, c.ViseClub, c.Country)

	s.emit("client.updated", map[string]any{
		"clientId": c.ID,
		"cardType": c.CardType,
		"status":   string(res.Status),
	})

	return c, res, nil
}

// DeleteClient удаляет клиента и сообщает, существовала ли запись.
func (s *Service) DeleteClient(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// ProcessPurchase рассчитывает решение по покупке. Если клиент не найден,
// ошибка возвращается до какой-либо оценки правил.
func (s *Service) ProcessPurchase(ctx context.Context, p model.Purchase) (model.PurchaseResult, error) {
	c, err := s.repo.Get(ctx, p.ClientID)
	if err != nil {
		return model.PurchaseResult{}, err
	}

	res := benefits.EvaluatePurchase(c.CardType, c.Country, p.Amount, p.PurchaseDate, p.PurchaseCountry)

	s.emit("purchase.processed", map[string]any{
		"clientId":    c.ID,
		"amount":      p.Amount,
		"currency":    p.Currency,
		"discount":    res.Discount,
		"finalAmount": res.FinalAmount,
		"benefit":     res.Benefit,
		"status":      string(res.Status),
	})

	return res, nil
}

// emit ставит событие аудита в очередь отправки. При переполненной очереди
// событие отбрасывается, бизнес-операции из-за аудита не блокируются.
func (s *Service) emit(eventType string, data map[string]any) {
	if s.auditClient == nil {
		return
	}

	ev := audit.Event{
		Type: eventType,
		Time: time.Now().UTC(),
		Data: data,
	}

	select {
	case s.events <- ev:
	default:
	}
}

// StartAuditExport запускает фоновую отправку событий аудита.
// Завершается при отмене контекста.
func (s *Service) StartAuditExport(ctx context.Context) {
	if s.auditClient == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.flushAuditBatch(ctx)
			}
		}
	}()
}

func (s *Service) flushAuditBatch(ctx context.Context) {
	var batch []audit.Event

	for len(batch) < 100 {
		select {
		case ev := <-s.events:
			batch = append(batch, ev)
		default:
			if len(batch) == 0 {
				return
			}
			_ = s.auditClient.Ingest(ctx, batch)
			return
		}
	}

	_ = s.auditClient.Ingest(ctx, batch)
}
