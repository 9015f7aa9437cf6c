package db_models

// ApprovalChange reports what a re-evaluation did, so callers can run the
// follow-up work (referral provisioning, cache busting) explicitly instead of
// relying on hidden save hooks.
type ApprovalChange struct {
	BecameVerified bool
	BecameHidden   bool
}

type Clinic struct {
	BaseModel
	Name        string
	Email       string `gorm:"unique"`
	Address     string
	Phone       string
	Description string

	EmailConfirmed bool `gorm:"default:false"`
	AdminApproved  bool `gorm:"default:false"`
	// Derived: EmailConfirmed && AdminApproved. Only Reevaluate writes it.
	IsVerified bool `gorm:"default:false;index"`

	EmailConfirmationToken  *string
	EmailConfirmationSentAt *int64 // unix seconds; token valid 24h from here

	// Stable once created; hidden (not deleted) while the clinic is unverified.
	ReferralCode *string `gorm:"uniqueIndex"`
}

// Reevaluate recomputes IsVerified from the two flags and reports the
// transition, if any. It never touches ReferralCode.
func (c *Clinic) Reevaluate() ApprovalChange {
	newVerified := c.EmailConfirmed && c.AdminApproved
	if newVerified == c.IsVerified {
		return ApprovalChange{}
	}
	c.IsVerified = newVerified
	return ApprovalChange{
		BecameVerified: newVerified,
		BecameHidden:   !newVerified,
	}
}

// ActiveReferralCode returns the code only while the clinic is verified.
func (c *Clinic) ActiveReferralCode() (string, bool) {
	if !c.IsVerified || c.ReferralCode == nil {
		return "", false
	}
	return *c.ReferralCode, true
}
