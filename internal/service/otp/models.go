package otp

import "time"

// IssueResult результат выдачи кода подтверждения
// Code предназначен только для доставки получателю;
// наружу показывается MaskedRecipient
type IssueResult struct {
	Code            string
	MaskedRecipient string
	ExpiresAt       time.Time
}
