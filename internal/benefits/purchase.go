package benefits

import (
	"strings"
	"time"

	"github.com/mmeshcher/vise-system/internal/model"
)

// Дни недели в нумерации правил: понедельник = 0 .. воскресенье = 6.
const (
	monday = iota
	tuesday
	wednesday
	thursday
	friday
	saturday
	sunday
)

const (
	benefitNone          = "No benefit"
	benefitInternational = "5% international discount"
	benefitInvalidCard   = "Invalid card type"
)

// purchaseInput содержит производные факты покупки, по которым
// срабатывают правила.
type purchaseInput struct {
	weekday int // понедельник = 0
	amount  float64
	foreign bool
}

// purchaseRule — одно правило скидки: предикат, ставка и описание льготы.
type purchaseRule struct {
	applies func(in purchaseInput) bool
	rate    float64
	benefit string
}

// Международная скидка всегда стоит первой в таблице уровня: при покупке
// за рубежом она перекрывает любые правила по дням недели.
var foreignRule = purchaseRule{
	applies: func(in purchaseInput) bool { return in.foreign },
	rate:    0.05,
	benefit: benefitInternational,
}

func dayRule(from, to int, minAmount float64, rate float64, benefit string) purchaseRule {
	return purchaseRule{
		applies: func(in purchaseInput) bool {
			return in.weekday >= from && in.weekday <= to && in.amount > minAmount
		},
		rate:    rate,
		benefit: benefit,
	}
}

// Таблицы правил по уровням карт. Правила проверяются по порядку,
// срабатывает первое подходящее.
var purchaseRules = map[model.CardType][]purchaseRule{
	model.CardClassic: {},
	model.CardGold: {
		foreignRule,
		dayRule(monday, monday, 100, 0.15, "15% Monday >100"),
	},
	model.CardPlatinum: {
		foreignRule,
		dayRule(monday, wednesday, 100, 0.20, "20% Mon-Wed >100"),
		dayRule(saturday, saturday, 200, 0.30, "30% Saturday >200"),
	},
	model.CardBlack: {
		foreignRule,
		dayRule(monday, wednesday, 100, 0.25, "25% Mon-Wed >100"),
		dayRule(saturday, saturday, 200, 0.35, "35% Saturday >200"),
	},
	model.CardWhite: {
		foreignRule,
		dayRule(monday, friday, 100, 0.25, "25% Mon-Fri >100"),
		dayRule(saturday, sunday, 200, 0.35, "35% weekend >200"),
	},
}

// EvaluatePurchase рассчитывает решение по покупке для клиента с указанным
// уровнем карты. Скидка усекается до целого в сторону нуля, итоговая сумма —
// усечение разности исходной суммы и уже целой скидки.
func EvaluatePurchase(cardType, clientCountry string, amount float64, purchaseDate time.Time, purchaseCountry string) model.PurchaseResult {
	rules, known := purchaseRules[model.ParseCardType(cardType)]
	if !known {
		return model.PurchaseResult{
			Status:      model.PurchaseRejected,
			Discount:    0,
			FinalAmount: int64(amount),
			Benefit:     benefitInvalidCard,
		}
	}

	in := purchaseInput{
		weekday: mondayBasedWeekday(purchaseDate),
		amount:  amount,
		foreign: !strings.EqualFold(purchaseCountry, clientCountry),
	}

	var discount int64
	benefit := benefitNone

	for _, rule := range rules {
		if rule.applies(in) {
			discount = int64(amount * rule.rate)
			benefit = rule.benefit
			break
		}
	}

	return model.PurchaseResult{
		Status:      model.PurchaseApproved,
		Discount:    discount,
		FinalAmount: int64(amount - float64(discount)),
		Benefit:     benefit,
	}
}

// mondayBasedWeekday переводит time.Weekday (воскресенье = 0) в нумерацию
// правил (понедельник = 0).
func mondayBasedWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
