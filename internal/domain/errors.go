package domain

import "errors"

var (
	// ErrTransport marks a fetch that failed at the network level or came
	// back with a non-success status.
	ErrTransport = errors.New("transport error")

	// ErrMalformedPayload marks a feed body that could not be decoded as a
	// GeoJSON feature collection of alerts.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrNotify marks a notification sink that rejected or could not render
	// a request.
	ErrNotify = errors.New("notify failure")
)
