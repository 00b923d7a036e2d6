package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "Abcdef1",
		Address:  "12 Main St",
		Phone:    "+8801712345678",
	}
}

func TestValidateRegisterNormalizesEmail(t *testing.T) {
	req := validRegisterRequest()
	req.Email = "  Jane@Example.COM "
	require.NoError(t, ValidateRegister(&req))
	require.Equal(t, "jane@example.com", req.Email)
}

func TestValidateRegisterRejects(t *testing.T) {
	for name, mutate := range map[string]func(*RegisterRequest){
		"empty name":        func(r *RegisterRequest) { r.Name = " " },
		"numeric name":      func(r *RegisterRequest) { r.Name = "1234" },
		"bad email":         func(r *RegisterRequest) { r.Email = "not-an-email" },
		"short password":    func(r *RegisterRequest) { r.Password = "Abc1" },
		"no upper password": func(r *RegisterRequest) { r.Password = "abcdef1" },
		"no digit password": func(r *RegisterRequest) { r.Password = "Abcdefg" },
		"bad phone":         func(r *RegisterRequest) { r.Phone = "phone" },
		"bad gender":        func(r *RegisterRequest) { r.Gender = "other" },
	} {
		t.Run(name, func(t *testing.T) {
			req := validRegisterRequest()
			mutate(&req)
			require.Error(t, ValidateRegister(&req))
		})
	}
}

func TestValidateRegisterAcceptsBoundaryPassword(t *testing.T) {
	req := validRegisterRequest()
	req.Password = "Abcdef1"
	require.NoError(t, ValidateRegister(&req))
}
