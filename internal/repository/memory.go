// Package repository содержит реализации хранилища клиентов сервиса VISE.
package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/mmeshcher/vise-system/internal/model"
)

// ErrClientNotFound возвращается, если клиент с указанным идентификатором не найден.
var ErrClientNotFound = errors.New("client not found")

// MemoryRepository хранит клиентов в памяти. Мутирующие операции и выдача
// идентификаторов сериализуются одним мьютексом, поэтому идентификаторы
// уникальны и монотонны при конкурентной регистрации.
type MemoryRepository struct {
	mu      sync.RWMutex
	clients map[int64]model.Client
	order   []int64
	nextID  int64
}

// NewMemoryRepository создаёт пустое хранилище клиентов в памяти.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		clients: make(map[int64]model.Client),
		nextID:  1,
	}
}

// Close освобождает ресурсы хранилища. Для хранилища в памяти ничего не делает.
func (r *MemoryRepository) Close() error {
	return nil
}

// Register сохраняет нового клиента и присваивает ему следующий идентификатор.
// Счётчик не откатывается при удалениях, идентификаторы не переиспользуются.
func (r *MemoryRepository) Register(_ context.Context, attrs model.ClientAttrs) (model.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := model.Client{
		ID:            r.nextID,
		Name:          attrs.Name,
		Country:       attrs.Country,
		MonthlyIncome: attrs.MonthlyIncome,
		ViseClub:      attrs.ViseClub,
		CardType:      attrs.CardType,
	}

	r.clients[c.ID] = c
	r.order = append(r.order, c.ID)
	r.nextID++

	return c, nil
}

// Get возвращает клиента по идентификатору.
func (r *MemoryRepository) Get(_ context.Context, id int64) (model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return model.Client{}, ErrClientNotFound
	}
	return c, nil
}

// List возвращает всех клиентов в порядке регистрации.
func (r *MemoryRepository) List(_ context.Context) ([]model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]model.Client, 0, len(r.order))
	for _, id := range r.order {
		res = append(res, r.clients[id])
	}
	return res, nil
}

// Update полностью заменяет атрибуты клиента, сохраняя идентификатор.
func (r *MemoryRepository) Update(_ context.Context, id int64, attrs model.ClientAttrs) (model.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return model.Client{}, ErrClientNotFound
	}

	c := model.Client{
		ID:            id,
		Name:          attrs.Name,
		Country:       attrs.Country,
		MonthlyIncome: attrs.MonthlyIncome,
		ViseClub:      attrs.ViseClub,
		CardType:      attrs.CardType,
	}
	r.clients[id] = c

	return c, nil
}

// Delete удаляет клиента и сообщает, существовала ли запись.
func (r *MemoryRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return false, nil
	}

	delete(r.clients, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return true, nil
}
