// Package model содержит доменные сущности сервиса VISE.
package model

import (
	"strings"
	"time"
)

// CardType описывает уровень карты клиента.
type CardType string

const (
	CardClassic  CardType = "classic"
	CardGold     CardType = "gold"
	CardPlatinum CardType = "platinum"
	CardBlack    CardType = "black"
	CardWhite    CardType = "white"
	// CardUnknown присваивается любому нераспознанному значению уровня карты.
	CardUnknown CardType = ""
)

// ParseCardType разбирает уровень карты без учёта регистра.
// Нераспознанное значение возвращается как CardUnknown, а не как ошибка:
// такие карты отклоняются правилами движка, а не транспортом.
func ParseCardType(s string) CardType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic":
		return CardClassic
	case "gold":
		return CardGold
	case "platinum":
		return CardPlatinum
	case "black":
		return CardBlack
	case "white":
		return CardWhite
	default:
		return CardUnknown
	}
}

// ClientAttrs содержит атрибуты клиента без идентификатора.
// При обновлении заменяются все поля целиком, слияния нет.
type ClientAttrs struct {
	Name          string
	Country       string
	MonthlyIncome int64
	ViseClub      bool
	CardType      string
}

// Client представляет зарегистрированного клиента. Идентификатор присваивается
// хранилищем, монотонно растёт и никогда не переиспользуется.
type Client struct {
	ID            int64
	Name          string
	Country       string
	MonthlyIncome int64
	ViseClub      bool
	CardType      string
}

// EligibilityStatus описывает результат проверки соответствия карте.
type EligibilityStatus string

const (
	StatusRegistered EligibilityStatus = "Registered"
	StatusRejected   EligibilityStatus = "Rejected"
)

// EligibilityResult содержит решение о соответствии клиента уровню карты.
// Не сохраняется: пересчитывается при каждой регистрации и обновлении,
// чтобы изменение правил сразу давало свежий результат.
type EligibilityResult struct {
	Status  EligibilityStatus
	Message string
}

// PurchaseStatus описывает результат обработки покупки.
type PurchaseStatus string

const (
	PurchaseApproved PurchaseStatus = "Approved"
	PurchaseRejected PurchaseStatus = "Rejected"
)

// Purchase описывает входные данные покупки. Покупка не сохраняется,
// это одноразовый вход для расчёта скидки.
type Purchase struct {
	ClientID        int64
	Amount          float64
	Currency        string
	PurchaseDate    time.Time
	PurchaseCountry string
}

// PurchaseResult содержит решение по покупке и рассчитанную скидку.
type PurchaseResult struct {
	Status      PurchaseStatus
	Discount    int64
	FinalAmount int64
	Benefit     string
}
