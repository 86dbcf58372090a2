// Package benefits реализует движок правил сервиса VISE: проверку
// соответствия клиента уровню карты и расчёт скидки при покупке.
// Все функции чистые, состояние не хранится.
package benefits

import (
	"fmt"
	"strings"

	"github.com/mmeshcher/vise-system/internal/model"
)

// eligibilityRule описывает требования уровня карты к клиенту.
// Все пороги включительные ("не меньше").
type eligibilityRule struct {
	minIncome    int64
	requireClub  bool
	country      string // пустая строка — страна не проверяется
	neverFits    bool   // уровень без каких-либо привилегий регистрации
}

// Требования уровней. Отсутствие уровня в таблице равнозначно отказу,
// поэтому нераспознанные карты отклоняются без отдельной ветки.
// black и white намеренно совпадают: расхождение — продуктовое решение.
var eligibilityRules = map[model.CardType]eligibilityRule{
	model.CardClassic:  {neverFits: true},
	model.CardGold:     {minIncome: 500},
	model.CardPlatinum: {minIncome: 1000, requireClub: true},
	model.CardBlack:    {minIncome: 2000, requireClub: true, country: "usa"},
	model.CardWhite:    {minIncome: 2000, requireClub: true, country: "usa"},
}

// EvaluateEligibility проверяет, подходит ли клиент под заявленный уровень
// карты. Уровень сравнивается без учёта регистра; нераспознанный уровень
// даёт статус Rejected, а не ошибку.
func EvaluateEligibility(cardType string, monthlyIncome int64, viseClub bool, country string) model.EligibilityResult {
	rule, known := eligibilityRules[model.ParseCardType(cardType)]

	fits := known && !rule.neverFits &&
		monthlyIncome >= rule.minIncome &&
		(!rule.requireClub || viseClub) &&
		(rule.country == "" || strings.EqualFold(country, rule.country))

	if fits {
		return model.EligibilityResult{
			Status:  model.StatusRegistered,
			Message: fmt.Sprintf("Client fit for card %s", cardType),
		}
	}

	return model.EligibilityResult{
		Status:  model.StatusRejected,
		Message: fmt.Sprintf("Client NOT fit for card %s", cardType),
	}
}
