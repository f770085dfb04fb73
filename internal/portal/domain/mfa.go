package domain

// MFAEnrollment is returned when an admin starts TOTP enrolment.
type MFAEnrollment struct {
	Secret  string // base32
	URL     string // otpauth:// for QR rendering
	Issuer  string
	Account string
}
