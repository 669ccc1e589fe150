package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	minUsernameLength = 3
	minPasswordLength = 8
)

type LoginRequest struct {
	Username string `json:"username" example:"kasir01"`
	Password string `json:"password" example:"rahasia123"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.Length(minUsernameLength, 50)),
		validation.Field(&req.Password, validation.Required, validation.Length(minPasswordLength, 72)),
	)
}
