package binder

import (
	"net/url"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/jcarcamo/fyyur-project/pkg/forms"
)

var (
	phoneRE = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
)

// urlValidator accepts absolute http(s) URLs or the empty string, so optional
// links can be cleared.
func urlValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	u, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// phoneValidator accepts XXX-XXX-XXXX or the empty string.
func phoneValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return phoneRE.MatchString(value)
}

func stateValidator(fl validator.FieldLevel) bool {
	return forms.IsState(fl.Field().String())
}

// startTimeValidator ensures the value can be parsed by forms.ParseStartTime.
// Add `required` to reject the empty string.
func startTimeValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := forms.ParseStartTime(value)
	return err == nil
}
