package dto

// TrackReferralRequest links an existing user to a referrer after the fact.
type TrackReferralRequest struct {
	UserID     string `json:"userId" binding:"required"`
	ReferrerID string `json:"referrerId" binding:"required"`
}
