package benefits

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmeshcher/vise-system/internal/model"
)

func TestEvaluateEligibility(t *testing.T) {
	tests := []struct {
		name       string
		cardType   string
		income     int64
		club       bool
		country    string
		wantStatus model.EligibilityStatus
	}{
		{
			name:       "classic never fits",
			cardType:   "classic",
			income:     1000000,
			club:       true,
			country:    "USA",
			wantStatus: model.StatusRejected,
		},
		{
			name:       "gold fits from 500 regardless of club and country",
			cardType:   "gold",
			income:     600,
			club:       false,
			country:    "MX",
			wantStatus: model.StatusRegistered,
		},
		{
			name:       "gold income boundary is inclusive",
			cardType:   "gold",
			income:     500,
			club:       false,
			country:    "MX",
			wantStatus: model.StatusRegistered,
		},
		{
			name:       "gold rejected below threshold",
			cardType:   "gold",
			income:     499,
			club:       true,
			country:    "USA",
			wantStatus: model.StatusRejected,
		},
		{
			name:       "platinum requires club",
			cardType:   "platinum",
			income:     1500,
			club:       false,
			country:    "MX",
			wantStatus: model.StatusRejected,
		},
		{
			name:       "platinum fits with income and club",
			cardType:   "platinum",
			income:     1000,
			club:       true,
			country:    "MX",
			wantStatus: model.StatusRegistered,
		},
		{
			name:       "black requires usa",
			cardType:   "black",
			income:     5000,
			club:       true,
			country:    "MX",
			wantStatus: model.StatusRejected,
		},
		{
			name:       "black fits in usa with club",
			cardType:   "black",
			income:     2000,
			club:       true,
			country:    "usa",
			wantStatus: model.StatusRegistered,
		},
		{
			name:       "black country compared case-insensitively",
			cardType:   "black",
			income:     2000,
			club:       true,
			country:    "USA",
			wantStatus: model.StatusRegistered,
		},
		{
			name:       "white mirrors black rules",
			cardType:   "white",
			income:     2000,
			club:       true,
			country:    "Usa",
			wantStatus: model.StatusRegistered,
		},
		{
			name:       "white rejected without club",
			cardType:   "white",
			income:     9000,
			club:       false,
			country:    "usa",
			wantStatus: model.StatusRejected,
		},
		{
			name:       "card type parsed case-insensitively",
			cardType:   "GOLD",
			income:     700,
			club:       false,
			country:    "AR",
			wantStatus: model.StatusRegistered,
		},
		{
			name:       "unknown card type rejected",
			cardType:   "titanium",
			income:     1000000,
			club:       true,
			country:    "usa",
			wantStatus: model.StatusRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := EvaluateEligibility(tt.cardType, tt.income, tt.club, tt.country)
			assert.Equal(t, tt.wantStatus, res.Status)
		})
	}
}

func TestEvaluateEligibilityMessages(t *testing.T) {
	fit := EvaluateEligibility("gold", 600, false, "MX")
	assert.Equal(t, "Client fit for card gold", fit.Message)

	notFit := EvaluateEligibility("classic", 600, false, "MX")
	assert.Equal(t, "Client NOT fit for card classic", notFit.Message)
}

func TestBlackAndWhiteShareEligibility(t *testing.T) {
	cases := []struct {
		income  int64
		club    bool
		country string
	}{
		{2000, true, "usa"},
		{2000, true, "mx"},
		{2000, false, "usa"},
		{1999, true, "usa"},
		{0, false, ""},
	}

	for _, c := range cases {
		black := EvaluateEligibility("black", c.income, c.club, c.country)
		white := EvaluateEligibility("white", c.income, c.club, c.country)
		assert.Equal(t, black.Status, white.Status,
			"income=%d club=%v country=%q", c.income, c.club, c.country)
	}
}
