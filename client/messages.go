package client

import "net/http"

// statusMessages is the fixed HTTP status → user-facing message table.
// Every backend-calling function maps failures through it so the UI never
// surfaces raw transport errors.
var statusMessages = map[int]string{
	http.StatusBadRequest:          "Bad request. Please check your input and try again.",
	http.StatusUnauthorized:        "Authentication required. Please log in and try again.",
	http.StatusForbidden:           "You do not have permission to perform this action.",
	http.StatusNotFound:            "The requested resource could not be found.",
	http.StatusConflict:            "This already exists. Please try a different value.",
	http.StatusUnprocessableEntity: "The submitted data failed validation. Please check your input.",
	http.StatusTooManyRequests:     "You're doing this too fast. Please try again later.",
}

// GenericErrorMessage covers transport failures and unmapped statuses.
const GenericErrorMessage = "An unexpected error occurred. Please try again later."

// MessageForStatus returns the mapped message for an HTTP status code.
func MessageForStatus(code int) string {
	if msg, ok := statusMessages[code]; ok {
		return msg
	}
	return GenericErrorMessage
}
