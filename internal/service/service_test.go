package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmeshcher/vise-system/internal/model"
	"github.com/mmeshcher/vise-system/internal/repository"
)

type stubRepo struct {
	registerClient model.Client
	registerErr    error

	getClient model.Client
	getErr    error
	getCalls  int

	listClients []model.Client
	listErr     error

	updateClient model.Client
	updateErr    error

	deleteExisted bool
	deleteErr     error
}

func (s *stubRepo) Close() error { return nil }

func (s *stubRepo) Register(ctx context.Context, attrs model.ClientAttrs) (model.Client, error) {
	return s.registerClient, s.registerErr
}

func (s *stubRepo) Get(ctx context.Context, id int64) (model.Client, error) {
	s.getCalls++
	return s.getClient, s.getErr
}

func (s *stubRepo) List(ctx context.Context) ([]model.Client, error) {
	return s.listClients, s.listErr
}

func (s *stubRepo) Update(ctx context.Context, id int64, attrs model.ClientAttrs) (model.Client, error) {
	return s.updateClient, s.updateErr
}

func (s *stubRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return s.deleteExisted, s.deleteErr
}

func TestRegisterClient_EvaluatesEligibility(t *testing.T) {
	repo := &stubRepo{
		registerClient: model.Client{
			ID:            1,
			Name:          "Ana",
			Country:       "MX",
			MonthlyIncome: 600,
			ViseClub:      false,
			CardType:      "gold",
		},
	}
	svc := NewService(repo, nil)

	c, res, err := svc.RegisterClient(context.Background(), model.ClientAttrs{})
	if err != nil {
		t.Fatalf("RegisterClient error: %v", err)
	}
	if c.ID != 1 {
		t.Fatalf("client id = %d, want 1", c.ID)
	}
	if res.Status != model.StatusRegistered {
		t.Fatalf("status = %s, want %s", res.Status, model.StatusRegistered)
	}
	if res.Message != "Client fit for card gold" {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestRegisterClient_RejectedTierStillStored(t *testing.T) {
	repo := &stubRepo{
		registerClient: model.Client{
			ID:            2,
			Country:       "MX",
			MonthlyIncome: 1500,
			ViseClub:      false,
			CardType:      "platinum",
		},
	}
	svc := NewService(repo, nil)

	c, res, err := svc.RegisterClient(context.Background(), model.ClientAttrs{})
	if err != nil {
		t.Fatalf("RegisterClient error: %v", err)
	}
	if c.ID != 2 {
		t.Fatalf("client id = %d, want 2", c.ID)
	}
	if res.Status != model.StatusRejected {
		t.Fatalf("status = %s, want %s", res.Status, model.StatusRejected)
	}
}

func TestUpdateClient_ReevaluatesEligibility(t *testing.T) {
	repo := &stubRepo{
		updateClient: model.Client{
			ID:            1,
			Country:       "USA",
			MonthlyIncome: 2500,
			ViseClub:      true,
			CardType:      "black",
		},
	}
	svc := NewService(repo, nil)

	_, res, err := svc.UpdateClient(context.Background(), 1, model.ClientAttrs{})
	if err != nil {
		t.Fatalf("UpdateClient error: %v", err)
	}
	if res.Status != model.StatusRegistered {
		t.Fatalf("status = %s, want %s", res.Status, model.StatusRegistered)
	}
}

func TestUpdateClient_PropagatesNotFound(t *testing.T) {
	repo := &stubRepo{updateErr: repository.ErrClientNotFound}
	svc := NewService(repo, nil)

	_, _, err := svc.UpdateClient(context.Background(), 9999, model.ClientAttrs{})
	if !errors.Is(err, repository.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestProcessPurchase_NotFoundBeforeRules(t *testing.T) {
	repo := &stubRepo{getErr: repository.ErrClientNotFound}
	svc := NewService(repo, nil)

	_, err := svc.ProcessPurchase(context.Background(), model.Purchase{
		ClientID:        9999,
		Amount:          150,
		Currency:        "USD",
		PurchaseDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PurchaseCountry: "MX",
	})
	if !errors.Is(err, repository.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestProcessPurchase_AppliesRules(t *testing.T) {
	repo := &stubRepo{
		getClient: model.Client{
			ID:       1,
			Country:  "MX",
			CardType: "gold",
		},
	}
	svc := NewService(repo, nil)

	res, err := svc.ProcessPurchase(context.Background(), model.Purchase{
		ClientID:        1,
		Amount:          150,
		Currency:        "USD",
		PurchaseDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), // понедельник
		PurchaseCountry: "MX",
	})
	if err != nil {
		t.Fatalf("ProcessPurchase error: %v", err)
	}

	if res.Status != model.PurchaseApproved {
		t.Fatalf("status = %s, want %s", res.Status, model.PurchaseApproved)
	}
	if res.Discount != 22 {
		t.Fatalf("discount = %d, want 22", res.Discount)
	}
	if res.FinalAmount != 128 {
		t.Fatalf("finalAmount = %d, want 128", res.FinalAmount)
	}
	if res.Benefit != "15% Monday >100" {
		t.Fatalf("benefit = %q", res.Benefit)
	}
}

func TestDeleteClient_ReportsExistence(t *testing.T) {
	repo := &stubRepo{deleteExisted: true}
	svc := NewService(repo, nil)

	deleted, err := svc.DeleteClient(context.Background(), 1)
	if err != nil {
		t.Fatalf("DeleteClient error: %v", err)
	}
	if !deleted {
		t.Fatal("expected deleted = true")
	}
}
