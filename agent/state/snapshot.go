package state

import (
	"strings"
	"time"
)

// Snapshot is the per-conversation mirror of the entities the caller last
// looked up or created. It lives in memory only and is dropped with the
// conversation.
type Snapshot struct {
	Policy   PolicyView   `json:"policy"`
	Customer CustomerView `json:"customer"`
	Claim    ClaimView    `json:"claim"`

	// Current ids gate claim filing and policy ownership.
	CurrentPolicyID     *int64 `json:"current_policy_id,omitempty"`
	CurrentCustomerID   *int64 `json:"current_customer_id,omitempty"`
	CurrentCustomerName string `json:"current_customer_name,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

type PolicyView struct {
	PolicyNumber string `json:"policy_number"`
	CustomerName string `json:"customer_name"`
	PolicyType   string `json:"policy_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Status       string `json:"status"`
}

type CustomerView struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

type ClaimView struct {
	ClaimID     string `json:"claim_id"`
	PolicyID    string `json:"policy_id"`
	Status      string `json:"status"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

/* ------------------------------ Rendering ------------------------------ */

type field struct {
	key   string
	value string
}

func render(fields []field) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f.key)
		b.WriteString(": ")
		b.WriteString(f.value)
		b.WriteByte('\n')
	}
	return b.String()
}

func isBlank(fields []field) bool {
	for _, f := range fields {
		if strings.TrimSpace(f.value) != "" {
			return false
		}
	}
	return true
}

func (v PolicyView) fields() []field {
	return []field{
		{"policy_number", v.PolicyNumber},
		{"customer_name", v.CustomerName},
		{"policy_type", v.PolicyType},
		{"start_date", v.StartDate},
		{"end_date", v.EndDate},
		{"status", v.Status},
	}
}

// String renders one "key: value" line per field.
func (v PolicyView) String() string { return render(v.fields()) }

// IsEmpty reports whether every field is blank.
func (v PolicyView) IsEmpty() bool { return isBlank(v.fields()) }

func (v CustomerView) fields() []field {
	return []field{
		{"customer_id", v.CustomerID},
		{"name", v.Name},
		{"email", v.Email},
		{"phone", v.Phone},
	}
}

func (v CustomerView) String() string { return render(v.fields()) }

func (v CustomerView) IsEmpty() bool { return isBlank(v.fields()) }

func (v ClaimView) fields() []field {
	return []field{
		{"claim_id", v.ClaimID},
		{"policy_id", v.PolicyID},
		{"status", v.Status},
		{"amount", v.Amount},
		{"description", v.Description},
	}
}

func (v ClaimView) String() string { return render(v.fields()) }

func (v ClaimView) IsEmpty() bool { return isBlank(v.fields()) }

/* ---------------------------- Snapshot helpers --------------------------- */

func NewSnapshot(now time.Time) *Snapshot {
	return &Snapshot{UpdatedAt: now.UTC()}
}

func (s *Snapshot) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

func (s *Snapshot) HasPolicy() bool {
	return s != nil && s.CurrentPolicyID != nil
}

func (s *Snapshot) HasCustomer() bool {
	return s != nil && s.CurrentCustomerID != nil
}

// SelectPolicy makes policyID the current policy and replaces the policy view.
func (s *Snapshot) SelectPolicy(policyID int64, view PolicyView, now time.Time) {
	id := policyID
	s.CurrentPolicyID = &id
	s.Policy = view
	s.Touch(now)
}

// SelectCustomer makes customerID the current customer and replaces the
// customer view.
func (s *Snapshot) SelectCustomer(customerID int64, name string, view CustomerView, now time.Time) {
	id := customerID
	s.CurrentCustomerID = &id
	s.CurrentCustomerName = name
	s.Customer = view
	s.Touch(now)
}

// RecordClaim replaces the claim view. It does not change current ids.
func (s *Snapshot) RecordClaim(view ClaimView, now time.Time) {
	s.Claim = view
	s.Touch(now)
}

// Clone returns a deep copy safe to hand out to readers.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	if s.CurrentPolicyID != nil {
		id := *s.CurrentPolicyID
		out.CurrentPolicyID = &id
	}
	if s.CurrentCustomerID != nil {
		id := *s.CurrentCustomerID
		out.CurrentCustomerID = &id
	}
	return &out
}
