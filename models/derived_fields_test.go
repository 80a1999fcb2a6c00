package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceComputeCommission(t *testing.T) {
	s := Service{ServiceCost: 1000, CommissionPercentage: 10}
	s.ComputeCommission()

	assert.Equal(t, 100.0, s.CommissionAmount)
	assert.Equal(t, 900.0, s.TechnicianAmount)
}

func TestServiceComputeCommissionZeroPercent(t *testing.T) {
	s := Service{ServiceCost: 500, CommissionPercentage: 0}
	s.ComputeCommission()

	assert.Equal(t, 0.0, s.CommissionAmount)
	assert.Equal(t, 500.0, s.TechnicianAmount)
}

func TestProductComputePricing(t *testing.T) {
	p := Product{
		ProductPrice:              1000,
		ProductDiscountPercentage: 10,
		ProductGst:                18,
		InStock:                   5,
	}
	p.ComputePricing()

	assert.Equal(t, ProductAvailable, p.Status)
	assert.Equal(t, 100.0, p.DiscountAmount)
	assert.Equal(t, 900.0, p.DiscountedPrice)
	assert.Equal(t, 162.0, p.GstAmount)
	assert.Equal(t, 1062.0, p.FinalPrice)
}

func TestProductComputePricingNoDiscount(t *testing.T) {
	p := Product{ProductPrice: 200, ProductGst: 5, InStock: 1}
	p.ComputePricing()

	assert.Equal(t, 0.0, p.DiscountAmount)
	assert.Equal(t, 200.0, p.DiscountedPrice)
	assert.Equal(t, 10.0, p.GstAmount)
	assert.Equal(t, 210.0, p.FinalPrice)
}

func TestProductComputePricingOutOfStock(t *testing.T) {
	p := Product{ProductPrice: 200, InStock: 0}
	p.ComputePricing()

	assert.Equal(t, ProductUnavailable, p.Status)
}

func TestRatingBucketContent(t *testing.T) {
	tests := []struct {
		rates   float64
		content string
	}{
		{5, RatingExcellent},
		{4, RatingExcellent},
		{3.5, RatingGood},
		{3, RatingGood},
		{2.5, RatingAverage},
		{2, RatingAverage},
		{1, RatingBelowAverage},
	}

	for _, tt := range tests {
		r := Rating{Rates: tt.rates}
		r.BucketContent()
		assert.Equal(t, tt.content, r.Content, "rates %.1f", tt.rates)
	}
}
