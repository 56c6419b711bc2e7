package chat

import "time"

// Entitlement is the policy applied to an account when a session starts:
// grant nothing, a 30-day trial, or lifetime Pro on every login.
type Entitlement string

const (
	EntitlementNone     Entitlement = "none"
	EntitlementTrial    Entitlement = "trial"
	EntitlementLifetime Entitlement = "lifetime"

	trialDuration = 30 * 24 * time.Hour
)

// applyEntitlement grants Pro according to the configured policy. It never
// downgrades an account that already has Pro.
func applyEntitlement(account *Account, policy Entitlement) {
	if account.Pro {
		return
	}
	switch policy {
	case EntitlementTrial:
		account.Pro = true
		account.ProExpiry = time.Now().Add(trialDuration).Format(time.RFC3339)
	case EntitlementLifetime:
		account.Pro = true
		account.ProExpiry = "lifetime"
	}
}

// activatePro unlocks Pro for the account. The confirmation code is taken
// on trust and only recorded; any non-empty code activates.
func activatePro(account *Account, code string) error {
	if code == "" {
		return ErrEmptyCode
	}
	account.Pro = true
	account.ProExpiry = "lifetime"
	account.DonationCode = code
	account.DonationDate = time.Now()
	return nil
}
