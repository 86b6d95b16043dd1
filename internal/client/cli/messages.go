package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/usermgr/internal/client/api"
)

// errorMessage converts a failure into the line shown to the user.
//
// Server-provided detail is shown verbatim; transport failures collapse into
// one generic connectivity message. No error ever escapes a command handler
// unconverted.
func errorMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fmt.Sprintf("Request failed (status %d).", apiErr.Status)
	}
	if errors.Is(err, api.ErrUnavailable) {
		return "Cannot reach the server. Check your connection and try again."
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return "Invalid username or password."
	}
	return "Something went wrong: " + err.Error()
}
