package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/simplepos/pos-api/internal/domain"
)

// Go's regexp has no lookahead.
const (
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,72}$`

	// bcrypt rejects longer input.
	maxPasswordBytes = 72
)

var (
	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

	errInvalidPassword = errors.New("the password must be 8 to 72 characters and contain 1 letter and 1 number")
	roles              = []interface{}{domain.RoleAdmin, domain.RoleEmployee}
)

type CreateEmployeeRequest struct {
	Name     string      `json:"name" example:"Siti Aminah"`
	Username string      `json:"username" example:"siti"`
	Password string      `json:"password" example:"rahasia123"`
	Role     domain.Role `json:"role" enums:"admin,employee" swaggertype:"string"`
}

func (req *CreateEmployeeRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Username, validation.Required, validation.Length(minUsernameLength, 50)),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Role, validation.Required, validation.In(roles...)),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password)
}

type UpdateEmployeeRequest struct {
	Name           string      `json:"name"`
	Username       string      `json:"username"`
	Role           domain.Role `json:"role" enums:"admin,employee" swaggertype:"string"`
	ChangePassword bool        `json:"change_password"`
	Password       string      `json:"password,omitempty"`
}

func (req *UpdateEmployeeRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Username, validation.Required, validation.Length(minUsernameLength, 50)),
		validation.Field(&req.Role, validation.Required, validation.In(roles...)),
	)
	if err != nil {
		return err
	}

	if !req.ChangePassword {
		return nil
	}

	return validatePassword(req.Password)
}

func validatePassword(password string) error {
	if len(password) > maxPasswordBytes {
		return errInvalidPassword
	}

	ok, err := passwordExp.MatchString(password)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}
