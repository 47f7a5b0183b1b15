package errors

import "errors"

var (
	// ErrCourseNotFound indicates that the referenced course does not exist
	ErrCourseNotFound = errors.New("course not found")

	// ErrSelfPurchase indicates an attempt to buy a course the user owns
	ErrSelfPurchase = errors.New("cannot purchase your own course")

	// ErrAlreadyPaid indicates the user already holds a paid payment for the course
	ErrAlreadyPaid = errors.New("course already paid for")

	// ErrPaymentNotFound indicates that the specified payment was not found
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrNoCheckoutSession indicates the payment never reached checkout
	// session provisioning, so there is nothing to reconcile against
	ErrNoCheckoutSession = errors.New("payment has no checkout session")
)
