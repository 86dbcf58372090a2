// Package validation содержит функции валидации входных данных.
package validation

import (
	"time"
	"unicode/utf8"
)

const purchaseDateLayout = "2006-01-02"

// IsValidClientField проверяет текстовое поле клиента: имя, страну и уровень
// карты. Допустимая длина — от 2 до 50 символов.
func IsValidClientField(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 2 && n <= 50
}

// IsValidCurrency проверяет код валюты. Валюта не сверяется со справочником
// ISO, требуется только непустое значение.
func IsValidCurrency(s string) bool {
	return s != ""
}

// IsValidPurchaseCountry проверяет страну покупки: не короче двух символов.
func IsValidPurchaseCountry(s string) bool {
	return utf8.RuneCountInString(s) >= 2
}

// ParsePurchaseDate разбирает дату покупки в формате YYYY-MM-DD.
func ParsePurchaseDate(s string) (time.Time, error) {
	return time.Parse(purchaseDateLayout, s)
}
