package tool

import (
	"context"
	"time"

	storex "github.com/tanpawarit/insurance-callcenter-agent/agent/store"
)

type fakeStore struct {
	customers []*storex.Customer
	policies  []*storex.Policy
	claims    []*storex.Claim

	err          error
	nilPolicy    bool
	createClaimN int
	lastPolicyIn storex.PolicyInput
}

func (f *fakeStore) CreatePolicy(ctx context.Context, in storex.PolicyInput) (*storex.Policy, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastPolicyIn = in
	if f.nilPolicy {
		return nil, nil
	}
	for _, p := range f.policies {
		if p.PolicyNumber == in.PolicyNumber {
			return nil, storex.ErrDuplicate
		}
	}
	p := &storex.Policy{
		PolicyID:     int64(len(f.policies) + 1),
		CustomerID:   in.CustomerID,
		PolicyNumber: in.PolicyNumber,
		PolicyType:   in.PolicyType,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Status:       in.Status,
		Premium:      in.Premium,
	}
	f.policies = append(f.policies, p)
	return p, nil
}

func (f *fakeStore) GetPolicyByNumber(ctx context.Context, policyNumber string) (*storex.Policy, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	for _, p := range f.policies {
		if p.PolicyNumber != policyNumber {
			continue
		}
		out := *p
		if p.CustomerID != nil {
			for _, c := range f.customers {
				if c.CustomerID == *p.CustomerID {
					out.CustomerName = c.Name
				}
			}
		}
		return &out, true, nil
	}
	return nil, false, nil
}

func (f *fakeStore) CreateClaim(ctx context.Context, policyID int64, amount float64, description string, status string) (*storex.Claim, error) {
	f.createClaimN++
	if f.err != nil {
		return nil, f.err
	}
	c := &storex.Claim{
		ClaimID:     int64(len(f.claims) + 100),
		PolicyID:    policyID,
		Status:      status,
		Amount:      amount,
		Description: description,
		DateFiled:   time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	}
	f.claims = append(f.claims, c)
	return c, nil
}

func (f *fakeStore) GetClaimStatus(ctx context.Context, claimID int64) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	for _, c := range f.claims {
		if c.ClaimID == claimID {
			return c.Status, true, nil
		}
	}
	return "", false, nil
}

func (f *fakeStore) CreateOrGetCustomer(ctx context.Context, name, email, phone string) (*storex.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.customers {
		if (email != "" && c.Email == email) || (phone != "" && c.Phone == phone) {
			out := *c
			return &out, nil
		}
	}
	c := &storex.Customer{
		CustomerID: int64(len(f.customers) + 1),
		Name:       name,
		Email:      email,
		Phone:      phone,
	}
	f.customers = append(f.customers, c)
	out := *c
	return &out, nil
}
