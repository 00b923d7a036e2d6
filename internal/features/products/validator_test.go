package products

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateProductRequest {
	return CreateProductRequest{
		Name:             "Gaming Laptop",
		Title:            "Fast gaming laptop",
		ShortDescription: "A fast laptop",
		RegularPrice:     1200,
		Quantity:         5,
		Brand:            "64a000000000000000000001",
		Category:         "64a000000000000000000002",
	}
}

func TestValidateCreateDefaults(t *testing.T) {
	req := validCreateRequest()
	require.NoError(t, ValidateCreate(&req))
	require.Equal(t, StatusActive, req.Status)
	require.Equal(t, ShippingFree, req.ShippingType)
}

func TestValidateCreateRejects(t *testing.T) {
	for name, mutate := range map[string]func(*CreateProductRequest){
		"short name":              func(r *CreateProductRequest) { r.Name = "ab" },
		"zero price":              func(r *CreateProductRequest) { r.RegularPrice = 0 },
		"sale above regular":      func(r *CreateProductRequest) { r.SalePrice = r.RegularPrice + 1 },
		"negative quantity":       func(r *CreateProductRequest) { r.Quantity = -1 },
		"free shipping with fee":  func(r *CreateProductRequest) { r.ShippingType = ShippingFree; r.ShippingFee = 10 },
		"paid shipping no fee":    func(r *CreateProductRequest) { r.ShippingType = ShippingPaid },
		"unknown shipping type":   func(r *CreateProductRequest) { r.ShippingType = "teleport" },
		"unknown status":          func(r *CreateProductRequest) { r.Status = "archived" },
	} {
		t.Run(name, func(t *testing.T) {
			req := validCreateRequest()
			mutate(&req)
			require.Error(t, ValidateCreate(&req))
		})
	}
}

func TestValidateCreateAcceptsPaidShipping(t *testing.T) {
	req := validCreateRequest()
	req.ShippingType = ShippingPaid
	req.ShippingFee = 15
	require.NoError(t, ValidateCreate(&req))
}
