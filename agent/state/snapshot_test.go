package state

import (
	"testing"
	"time"
)

func TestPolicyViewStringKeepsFieldOrder(t *testing.T) {
	t.Parallel()

	v := PolicyView{
		PolicyNumber: "P1023",
		CustomerName: "Jane Roe",
		PolicyType:   "Home",
		StartDate:    "2024-03-20",
		EndDate:      "2025-03-20",
		Status:       "Active",
	}
	want := "policy_number: P1023\n" +
		"customer_name: Jane Roe\n" +
		"policy_type: Home\n" +
		"start_date: 2024-03-20\n" +
		"end_date: 2025-03-20\n" +
		"status: Active\n"
	if got := v.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestViewsIsEmpty(t *testing.T) {
	t.Parallel()

	if !(PolicyView{}).IsEmpty() {
		t.Fatal("zero PolicyView must be empty")
	}
	if (PolicyView{Status: "Active"}).IsEmpty() {
		t.Fatal("PolicyView with status must not be empty")
	}
	if !(CustomerView{Name: "  "}).IsEmpty() {
		t.Fatal("whitespace-only CustomerView must be empty")
	}
	if (ClaimView{ClaimID: "7"}).IsEmpty() {
		t.Fatal("ClaimView with id must not be empty")
	}
}

func TestSnapshotSelections(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	s := NewSnapshot(now)
	if s.HasPolicy() || s.HasCustomer() {
		t.Fatal("new snapshot must have no selections")
	}

	s.SelectCustomer(7, "Jane", CustomerView{CustomerID: "7", Name: "Jane"}, now.Add(time.Minute))
	if !s.HasCustomer() || *s.CurrentCustomerID != 7 || s.CurrentCustomerName != "Jane" {
		t.Fatalf("unexpected customer selection: %#v", s)
	}

	s.SelectPolicy(11, PolicyView{PolicyNumber: "P11"}, now.Add(2*time.Minute))
	if !s.HasPolicy() || *s.CurrentPolicyID != 11 {
		t.Fatalf("unexpected policy selection: %#v", s)
	}
	if !s.UpdatedAt.Equal(now.Add(2 * time.Minute)) {
		t.Fatalf("UpdatedAt = %s", s.UpdatedAt)
	}

	clone := s.Clone()
	*clone.CurrentPolicyID = 99
	if *s.CurrentPolicyID != 11 {
		t.Fatal("Clone must not share current policy id")
	}

	var nilSnapshot *Snapshot
	if nilSnapshot.HasPolicy() || nilSnapshot.Clone() != nil {
		t.Fatal("nil snapshot helpers must be safe")
	}
}
