package auth

import (
	"errors"
	"strings"

	"github.com/xyz-asif/gocart/internal/pkg/validator"
)

// ValidateRegister checks the registration payload before any I/O.
func ValidateRegister(req *RegisterRequest) error {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if !validator.IsValidName(req.Name) {
		return errors.New("name must be at least 2 characters and contain only letters")
	}
	if !validator.IsValidEmail(req.Email) {
		return errors.New("please enter a valid email")
	}
	if !validator.IsStrongPassword(req.Password) {
		return errors.New("password must be at least 7 characters with upper, lower and digit")
	}
	if !validator.IsValidPhone(req.Phone) {
		return errors.New("please enter a valid phone number")
	}
	if req.Gender != "" && req.Gender != "male" && req.Gender != "female" {
		return errors.New("gender must be male or female")
	}
	return nil
}
