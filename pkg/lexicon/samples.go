package lexicon

// Sample is a labeled example message used as a regression fixture and by
// callers that want to demo the engine against known inputs.
type Sample struct {
	ID       int    `json:"id"`
	Type     string `json:"type"` // "phishing" or "legitimate"
	Content  string `json:"content"`
	Source   string `json:"source"` // "Email" or "SMS"
	Phishing bool   `json:"phishing"`
}

// Samples returns the labeled sample corpus.
func Samples() []Sample {
	return []Sample{
		{
			ID:       1,
			Type:     "phishing",
			Content:  "URGENT: Your account has been compromised. Click here immediately to verify your identity: http://amaz0n-security-verify.com. Failure to verify within 24 hours will result in permanent account closure.",
			Source:   "Email",
			Phishing: true,
		},
		{
			ID:       2,
			Type:     "phishing",
			Content:  "Dear Valued Customer, We've detected unusual sing in attempt to your BankOfAmerica account. If this wasn't you, confirm your identity by entering your details here: https://b4nkofamerica-secure.net/verify",
			Source:   "SMS",
			Phishing: true,
		},
		{
			ID:       3,
			Type:     "legitimate",
			Content:  "Amazon: Your package with order #A28C567 has been shipped and is expected to arrive on June 15. Track your delivery at amazon.com/orders.",
			Source:   "SMS",
			Phishing: false,
		},
		{
			ID:       4,
			Type:     "phishing",
			Content:  "NETFLIX: Your subscription payment failed. To avoid service interruption, update your billing information at: netfl1x-accounts.com/billing-update",
			Source:   "Email",
			Phishing: true,
		},
		{
			ID:       5,
			Type:     "legitimate",
			Content:  "Your Google security code is: 347890. Don't share this code with anyone. Google will never ask you for this code by phone or email.",
			Source:   "SMS",
			Phishing: false,
		},
	}
}
