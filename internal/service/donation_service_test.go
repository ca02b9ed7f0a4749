package service

import (
	"testing"

	"crowdfund_webapp/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFeeCalculation(t *testing.T) {
	s := NewDonationService(nil, 0.5, nil)

	// goal=1000, donation=100, fee 0.5% -> fee 0.5, net 99.5
	assert.InDelta(t, 0.5, s.Fee(100), 1e-9)

	d := domain.Donation{Amount: 100, AdminFee: s.Fee(100)}
	assert.InDelta(t, 99.5, d.Net(), 1e-9)
}

func TestFeeCalculationZeroPercent(t *testing.T) {
	s := NewDonationService(nil, 0, nil)

	assert.Zero(t, s.Fee(250))

	d := domain.Donation{Amount: 250, AdminFee: s.Fee(250)}
	assert.InDelta(t, 250, d.Net(), 1e-9)
}
