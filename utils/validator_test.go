package utils

import (
	"strings"
	"testing"
)

type registerForm struct {
	FirstName       string `validate:"required,nameok"`
	Phone           string `validate:"required,phonebd"`
	Email           string `validate:"emailok"`
	Password        string `validate:"required,pwdmin"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

func validForm() registerForm {
	return registerForm{
		FirstName:       "Rahim",
		Phone:           "01712345678",
		Email:           "rahim@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestValidateStruct(t *testing.T) {
	if err := ValidateStruct(validForm()); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*registerForm)
		wantSub string
	}{
		{"missing name", func(f *registerForm) { f.FirstName = "" }, "required"},
		{"bad name chars", func(f *registerForm) { f.FirstName = "<script>" }, "invalid characters"},
		{"short phone", func(f *registerForm) { f.Phone = "0171234" }, "Bangladeshi"},
		{"foreign phone", func(f *registerForm) { f.Phone = "8801712345678" }, "Bangladeshi"},
		{"bad email", func(f *registerForm) { f.Email = "not-an-email" }, "email"},
		{"short password", func(f *registerForm) { f.Password = "abc"; f.ConfirmPassword = "abc" }, "at least 6"},
		{"mismatched confirm", func(f *registerForm) { f.ConfirmPassword = "secret2" }, "must equal Password"},
	}
	for _, c := range cases {
		f := validForm()
		c.mutate(&f)
		err := ValidateStruct(&f)
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if !strings.Contains(err.Error(), c.wantSub) {
			t.Errorf("%s: error %q does not mention %q", c.name, err.Error(), c.wantSub)
		}
	}

	// Optional fields are only checked when set.
	f := validForm()
	f.Email = ""
	if err := ValidateStruct(f); err != nil {
		t.Errorf("empty optional email should pass: %v", err)
	}
}
