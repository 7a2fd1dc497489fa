package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/conduitlabs/conduit/pkg/httpx"
)

const minPasswordLength = 12

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func validateEmail(fe httpx.FieldErrors, email string) {
	if strings.TrimSpace(email) == "" {
		fe.Add("email", "can't be blank")
		return
	}
	if !emailPattern.MatchString(email) {
		fe.Add("email", "is invalid")
	}
}

func validateUsername(fe httpx.FieldErrors, username string) {
	if strings.TrimSpace(username) == "" {
		fe.Add("username", "can't be blank")
	}
}

func validatePassword(fe httpx.FieldErrors, password string) {
	if password == "" {
		fe.Add("password", "can't be blank")
		return
	}
	if len(password) < minPasswordLength {
		fe.Add("password", fmt.Sprintf("must be at least %d characters long", minPasswordLength))
	}
}

func validateRequired(fe httpx.FieldErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		fe.Add(field, "can't be blank")
	}
}
