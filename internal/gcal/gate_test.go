package gcal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"compass/internal/model"
)

func TestShouldOfferCalendar(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		timeline string
		want     bool
	}{
		{"active with months", "Active", "May - August", true},
		{"upcoming with days", "Upcoming", "October 1-31", true},
		{"completed", "Completed", "December - January", false},
		{"completed without date", "Completed", "TBD", false},
		{"year-round", "Active", "Year-round", false},
		{"year-round lowercase", "Active", "open year-round", false},
		{"year-round with month", "Active", "Year-round, apply by March", true},
		{"no month no year-round", "Active", "TBD", true},
		{"empty timeline", "Active", "", true},
		{"abbreviated months", "Upcoming", "May-August & Dec-March", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.Program{Name: tt.name, Status: tt.status, Timeline: tt.timeline}
			assert.Equal(t, tt.want, ShouldOfferCalendar(p))
		})
	}
}

func TestShouldOfferInDetail(t *testing.T) {
	assert.True(t, ShouldOfferInDetail(model.Program{Status: "Active", Timeline: "March - May"}))
	assert.False(t, ShouldOfferInDetail(model.Program{Status: "Active", Timeline: "TBD"}))
	assert.False(t, ShouldOfferInDetail(model.Program{Status: "Active", Timeline: "Year-round"}))
	assert.False(t, ShouldOfferInDetail(model.Program{Status: "Completed", Timeline: "December - January"}))
}
