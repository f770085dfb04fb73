package domain

import "time"

// Partner is an affiliate with a referral slug. CommissionRate is in basis
// points, so 1250 is 12.5%.
type Partner struct {
	ID             string
	Name           string
	Slug           string
	Website        string
	CommissionRate int
	MemberID       string // owning member, empty for house partners
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Commission returns the partner's cut of amountCents, rounded down.
func (p Partner) Commission(amountCents int64) int64 {
	return amountCents * int64(p.CommissionRate) / 10_000
}

// Click is one tracked visit through a referral link.
type Click struct {
	ID          string
	PartnerID   string
	VisitorID   string // uuid, kept in a cookie
	LandingPath string
	Referrer    string
	UserAgent   string
	IPHash      string
	CreatedAt   time.Time
}

// Conversion is a sale attributed to a partner.
type Conversion struct {
	ID          string
	PartnerID   string
	ClickID     string // optional
	Reference   string // order reference, unique per partner
	AmountCents int64
	CreatedAt   time.Time
}

// PartnerStats is one row of the analytics report.
type PartnerStats struct {
	PartnerID       string
	PartnerName     string
	Slug            string
	Clicks          int64
	UniqueVisitors  int64
	Conversions     int64
	ConversionRate  float64 // conversions / unique visitors
	RevenueCents    int64
	CommissionCents int64
}
