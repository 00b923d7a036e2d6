package products

import (
	"errors"
	"fmt"
	"strings"
)

// ValidateCreate checks the create form beyond what binding enforces.
func ValidateCreate(req *CreateProductRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Title = strings.TrimSpace(req.Title)

	if len(req.Name) < 3 {
		return errors.New("product name must be at least 3 characters")
	}
	if req.RegularPrice <= 0 {
		return errors.New("regular price must be positive")
	}
	if req.SalePrice < 0 || req.SalePrice > req.RegularPrice {
		return errors.New("sale price must be between 0 and the regular price")
	}
	if req.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}

	if req.ShippingType == "" {
		req.ShippingType = ShippingFree
	}
	if err := validateShipping(req.ShippingType, req.ShippingFee); err != nil {
		return err
	}

	if req.Status == "" {
		req.Status = StatusActive
	}
	if err := validateStatus(req.Status); err != nil {
		return err
	}

	return nil
}

func validateShipping(shippingType string, fee float64) error {
	switch shippingType {
	case ShippingFree:
		if fee != 0 {
			return errors.New("free shipping cannot have a fee")
		}
	case ShippingPaid:
		if fee <= 0 {
			return errors.New("paid shipping requires a positive fee")
		}
	default:
		return fmt.Errorf("invalid shipping type: %s", shippingType)
	}
	return nil
}

func validateStatus(status string) error {
	if status != StatusActive && status != StatusInactive {
		return fmt.Errorf("invalid status: %s", status)
	}
	return nil
}
