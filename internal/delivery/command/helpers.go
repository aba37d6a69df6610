package command

import (
	"errors"
	"fmt"
	"strings"
)

var errUnknownUser = errors.New("the token does not identify a user, log in to use this command")

func requiredFlag(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
