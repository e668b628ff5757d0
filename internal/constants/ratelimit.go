package constants

import "time"

const (
	// Lead submission: 5 per hour per client IP
	SubmitLimit  = 5
	SubmitWindow = time.Hour

	// Verification code send: 3 per 10 minutes per client IP
	SendCodeLimit  = 3
	SendCodeWindow = 10 * time.Minute

	// Verification code check: 5 per 10 minutes per client IP
	CheckCodeLimit  = 5
	CheckCodeWindow = 10 * time.Minute
)
