package models

type ReferralType string

const (
	ReferralMedical   ReferralType = "medical_referral"
	ReferralLegal     ReferralType = "legal_referral"
	ReferralEmergency ReferralType = "emergency_resources"
)

// ScopeCheck is the outcome of the scope boundary check.
type ScopeCheck struct {
	IsInScope    bool         `json:"isInScope" msgpack:"isInScope"`
	ReferralType ReferralType `json:"referralType,omitempty" msgpack:"referralType,omitempty"`
}

func InScope() ScopeCheck {
	return ScopeCheck{IsInScope: true}
}

func Referral(t ReferralType) ScopeCheck {
	return ScopeCheck{IsInScope: false, ReferralType: t}
}
