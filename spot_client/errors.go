package main

import (
	"errors"
	"fmt"

	"spotdrop/apiclient"
)

// userFacing maps the error taxonomy to the short text shown in the status
// line.
func userFacing(err error) string {
	var netErr *apiclient.NetworkError
	if errors.As(err, &netErr) {
		return "could not reach the server"
	}
	var httpErr *apiclient.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Body != "" {
			return fmt.Sprintf("server said %d: %s", httpErr.Status, httpErr.Body)
		}
		return fmt.Sprintf("server returned status %d", httpErr.Status)
	}
	var decodeErr *apiclient.DecodeError
	if errors.As(err, &decodeErr) {
		return "unexpected response from server"
	}
	var validationErr *apiclient.ValidationError
	if errors.As(err, &validationErr) {
		return "please fill in " + validationErr.Field
	}
	return err.Error()
}
