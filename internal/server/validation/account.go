package validation

import (
	"strings"

	"github.com/dmitrijs2005/focusflow/internal/common"
)

// Form gives access to submitted form values. *gin.Context satisfies it.
type Form interface {
	GetPostForm(key string) (string, bool)
}

const (
	FieldEmail    = "user_email"
	FieldUsername = "user_name"
	FieldPassword = "user_password"
)

type SignupInput struct {
	Email    string `validate:"required,max=150"`
	Username string `validate:"required,max=150"`
	Password string `validate:"required,max=450"`
}

type LoginInput struct {
	Email    string
	Password string
}

var accountFieldNames = map[string]string{
	"Email":    FieldEmail,
	"Username": FieldUsername,
	"Password": FieldPassword,
}

// collect reads keys from form in order, trimming surrounding whitespace.
func collect(form Form, keys ...string) ([]string, error) {
	values := make([]string, len(keys))
	var missing []string
	for i, k := range keys {
		v, ok := form.GetPostForm(k)
		if !ok {
			missing = append(missing, k)
			continue
		}
		values[i] = strings.TrimSpace(v)
	}
	if len(missing) > 0 {
		return nil, &MissingKeysError{Keys: missing}
	}
	return values, nil
}

// Signup requires email, username and password, all non-empty after
// trimming and within their column bounds.
func Signup(form Form) (SignupInput, error) {
	values, err := collect(form, FieldEmail, FieldUsername, FieldPassword)
	if err != nil {
		return SignupInput{}, err
	}

	for i, k := range []string{FieldEmail, FieldUsername, FieldPassword} {
		if values[i] == "" {
			return SignupInput{}, &FieldError{Field: k, Reason: "must not be empty", Err: common.ErrEmptyFields}
		}
	}

	in := SignupInput{Email: values[0], Username: values[1], Password: values[2]}
	if err := checkStruct(in, accountFieldNames); err != nil {
		return SignupInput{}, err
	}
	return in, nil
}

// Login requires the email and password keys. Empty values are allowed
// through and simply fail to match an account.
func Login(form Form) (LoginInput, error) {
	values, err := collect(form, FieldEmail, FieldPassword)
	if err != nil {
		return LoginInput{}, err
	}
	return LoginInput{Email: values[0], Password: values[1]}, nil
}
