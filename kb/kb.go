package kb

import (
	"github.com/randalmurphal/supportflow"
)

// Entry is one knowledge base article.
type Entry struct {
	ID       string               `json:"id"`
	Category supportflow.Category `json:"category"`
	Question string               `json:"question"`
	Keywords []string             `json:"keywords"`
	Answer   string               `json:"answer"`
}

// DefaultEntries returns the built-in knowledge base covering the most
// common billing, technical, and security inquiries.
func DefaultEntries() []Entry {
	return []Entry{
		{
			ID:       "billing_001",
			Category: supportflow.CategoryBilling,
			Question: "I was charged twice",
			Keywords: []string{"charged twice", "double charge", "duplicate payment", "paid twice", "billed twice", "paid thrice"},
			Answer:   "Sorry for the inconvenience. Please share your transaction ID, and we'll refund the extra charge within 3-5 business days.",
		},
		{
			ID:       "billing_002",
			Category: supportflow.CategoryBilling,
			Question: "I paid for premium but it still shows free account",
			Keywords: []string{"premium not working", "upgrade not working", "paid but still free", "premium not activated"},
			Answer:   "Thank you for your payment. Please log out and log back in. If the issue continues after 10 minutes, contact our billing support at billing@example.com.",
		},
		{
			ID:       "billing_003",
			Category: supportflow.CategoryBilling,
			Question: "Payment not working",
			Keywords: []string{"payment failed", "card declined", "payment error", "can't pay", "payment not working"},
			Answer:   "Please verify your payment information and try again. If the issue persists, try a different payment method or contact billing support at billing@example.com.",
		},
		{
			ID:       "technical_001",
			Category: supportflow.CategoryTechnical,
			Question: "How do I reset my password?",
			Keywords: []string{"reset password", "forgot password", "password reset", "can't login", "password help"},
			Answer:   "Click on 'Forgot Password' at the login page and follow the steps in your email. If you don't receive the email, check your spam folder.",
		},
		{
			ID:       "technical_002",
			Category: supportflow.CategoryTechnical,
			Question: "Why is my internet slow?",
			Keywords: []string{"slow internet", "connection slow", "slow speed", "internet issues", "connectivity problems"},
			Answer:   "Please restart your router and modem. Wait 30 seconds before plugging them back in. If the issue persists, contact technical support.",
		},
		{
			ID:       "security_001",
			Category: supportflow.CategorySecurity,
			Question: "Is my account secure?",
			Keywords: []string{"account security", "data safe", "privacy", "secure account", "safety"},
			Answer:   "Yes, we use industry-standard encryption and security practices. Enable two-factor authentication for additional security.",
		},
		{
			ID:       "security_002",
			Category: supportflow.CategorySecurity,
			Question: "I think my account was hacked",
			Keywords: []string{"account hacked", "unauthorized access", "suspicious activity", "security breach", "compromised account"},
			Answer:   "Please change your password immediately and enable two-factor authentication. Contact our security team at security@example.com for further assistance.",
		},
	}
}
