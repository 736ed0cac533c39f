package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrAlreadyExists   = errors.New("entity already exists")
	ErrInvalidArgument = errors.New("invalid argument")

	// Ticket errors. All of these collapse into one generic message at the
	// HTTP boundary; the distinction feeds logging and metrics only.
	ErrMalformedToken = errors.New("malformed token")
	ErrTamperedToken  = errors.New("tampered token")
	ErrExpiredTicket  = errors.New("ticket expired")
	ErrReplayedTicket = errors.New("ticket already redeemed")

	// Access code / checkout errors
	ErrCodeNotFound    = errors.New("access code not found")
	ErrCodeAlreadyUsed = errors.New("access code already used")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrPaymentDeclined = errors.New("payment declined by provider")
)
