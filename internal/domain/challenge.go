package domain

import "time"

// ChallengePurpose distinguishes which surface requested the code (kept for audit)
type ChallengePurpose string

const (
	PurposeCustomerCancel ChallengePurpose = "customer_cancel"
	PurposeAdminCancel    ChallengePurpose = "admin_cancel"
)

// OtpChallenge represents a single-use cancellation code bound to one booking
// Для каждого бронирования существует не более одного неиспользованного кода:
// повторная отправка замещает предыдущий
type OtpChallenge struct {
	ID              int64
	BookingID       int64
	Purpose         ChallengePurpose
	Code            string // 6 цифр, ведущие нули сохраняются
	MaskedRecipient string // Замаскированный email получателя (для отображения)
	ExpiresAt       time.Time
	Consumed        bool

	CreatedAt time.Time
}

// IsExpired reports whether the challenge has passed its expiry at the given time
func (c *OtpChallenge) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// IsVerifiable returns true if the challenge can still be used at the given time
func (c *OtpChallenge) IsVerifiable(now time.Time) bool {
	return !c.Consumed && !c.IsExpired(now)
}
