package dto

// TeamMemberResponse one member of a user's referral team.
type TeamMemberResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	ReferrerID string `json:"referrer_id,omitempty"`
	Status     string `json:"status"`
}

// TeamResponse direct referrals or the full downline of a user.
type TeamResponse struct {
	Total   int                  `json:"total"`
	Members []TeamMemberResponse `json:"members"`
}
