package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product availability statuses
const (
	ProductAvailable   = "Available"
	ProductUnavailable = "Unavailable"
)

type Product struct {
	ID                        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProductName               string             `json:"productName" bson:"productName"`
	ProductDescription        string             `json:"productDescription" bson:"productDescription"`
	ProductPrice              float64            `json:"productPrice" bson:"productPrice"`
	ProductDiscountPercentage float64            `json:"productDiscountPercentage" bson:"productDiscountPercentage"`
	ProductGst                float64            `json:"productGst" bson:"productGst"`
	InStock                   int                `json:"inStock" bson:"inStock"`
	OutStock                  int                `json:"outStock" bson:"outStock"`
	ProductImage              []string           `json:"productImage" bson:"productImage"`
	ProductBrand              string             `json:"productBrand" bson:"productBrand"`
	ProductFeatures           []string           `json:"productFeatures" bson:"productFeatures"`
	Status                    string             `json:"status" bson:"status"`
	Warranty                  string             `json:"warranty,omitempty" bson:"warranty,omitempty"`
	DiscountAmount            float64            `json:"discountAmount" bson:"discountAmount"`
	DiscountedPrice           float64            `json:"discountedPrice" bson:"discountedPrice"`
	GstAmount                 float64            `json:"gstAmount" bson:"gstAmount"`
	FinalPrice                float64            `json:"finalPrice" bson:"finalPrice"`
	CreatedAt                 time.Time          `json:"createdAt" bson:"createdAt"`
}

// ComputePricing refreshes the derived pricing fields and the availability
// status from the current stock.
func (p *Product) ComputePricing() {
	if p.InStock == 0 {
		p.Status = ProductUnavailable
	} else {
		p.Status = ProductAvailable
	}

	p.DiscountAmount = 0
	p.DiscountedPrice = p.ProductPrice
	if p.ProductDiscountPercentage > 0 {
		p.DiscountAmount = p.ProductPrice * p.ProductDiscountPercentage / 100
		p.DiscountedPrice = p.ProductPrice - p.DiscountAmount
	}

	p.GstAmount = p.DiscountedPrice * p.ProductGst / 100
	p.FinalPrice = p.DiscountedPrice + p.GstAmount
}
