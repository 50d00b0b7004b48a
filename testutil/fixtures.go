package testutil

import (
	"github.com/randalmurphal/supportflow"
)

// SampleTickets returns representative tickets spanning every category.
func SampleTickets() []supportflow.Ticket {
	return []supportflow.Ticket{
		supportflow.NewTicket(
			"Charged twice this month",
			"I was charged twice for my subscription this month, please refund one of them."),
		supportflow.NewTicket(
			"Cannot reset my password",
			"I forgot my password and the reset email isn't working."),
		supportflow.NewTicket(
			"Suspicious login alert",
			"I got an alert about unauthorized access to my account from another country."),
		supportflow.NewTicket(
			"Question about your roadmap",
			"Do you have plans to add a dark mode to the dashboard?"),
	}
}

// BillingTicket returns a ticket that matches the double-charge knowledge
// base entry.
func BillingTicket() supportflow.Ticket {
	return SampleTickets()[0]
}
