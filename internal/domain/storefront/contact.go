package storefront

import "strings"

// ContactSources keeps every contact field an upstream order payload may
// carry. The canonical customer email/phone is picked by an explicit priority
// chain rather than ad-hoc fallbacks scattered through callers.
type ContactSources struct {
	// CustomerEmail/CustomerPhone come from the embedded or enriched
	// customer object and take priority over order-level fields
	CustomerEmail string
	CustomerPhone string

	// OrderEmail/OrderPhone are the top-level contact fields of the order
	OrderEmail string
	OrderPhone string

	BillingEmail string
	BillingPhone string

	ShippingEmail string
	ShippingPhone string
}

// emailSources is the priority order for the canonical email:
// enriched/embedded customer, then order, then billing, then shipping.
func (c ContactSources) emailSources() []string {
	return []string{c.CustomerEmail, c.OrderEmail, c.BillingEmail, c.ShippingEmail}
}

// phoneSources is the priority order for the canonical phone
func (c ContactSources) phoneSources() []string {
	return []string{c.CustomerPhone, c.OrderPhone, c.ShippingPhone, c.BillingPhone}
}

// BestEmail returns the highest-priority non-empty email
func (c ContactSources) BestEmail() string {
	return firstNonEmpty(c.emailSources())
}

// BestPhone returns the highest-priority non-empty phone
func (c ContactSources) BestPhone() string {
	return firstNonEmpty(c.phoneSources())
}

// MatchesContact verifies that the buyer-entered contact value matches one of
// the order's contact sources. Emails compare case-insensitively against
// every email source. Phones match either verbatim or with all non-digit
// characters stripped from both sides, so "+1 (555) 010-2030" matches
// "15550102030".
func (c ContactSources) MatchesContact(contact string) bool {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return false
	}

	lowered := strings.ToLower(contact)
	for _, email := range c.emailSources() {
		if email != "" && strings.ToLower(strings.TrimSpace(email)) == lowered {
			return true
		}
	}

	contactDigits := digitsOnly(contact)
	for _, phone := range c.phoneSources() {
		if phone == "" {
			continue
		}
		if strings.TrimSpace(phone) == contact {
			return true
		}
		if d := digitsOnly(phone); d != "" && d == contactDigits {
			return true
		}
	}
	return false
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
