package tool

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	statex "github.com/tanpawarit/insurance-callcenter-agent/agent/state"
	storex "github.com/tanpawarit/insurance-callcenter-agent/agent/store"
)

const (
	msgPolicyNotFound     = "Policy not found"
	msgNoPolicySelected   = "No policy selected yet. Please provide a policy number."
	msgPolicyCreateFailed = "Failed to create policy"
	msgClaimNeedsPolicy   = "Please provide your policy number first before filing a claim."
)

// Store is the persistence the tools need.
type Store interface {
	CreatePolicy(ctx context.Context, in storex.PolicyInput) (*storex.Policy, error)
	GetPolicyByNumber(ctx context.Context, policyNumber string) (*storex.Policy, bool, error)
	CreateClaim(ctx context.Context, policyID int64, amount float64, description string, status string) (*storex.Claim, error)
	GetClaimStatus(ctx context.Context, claimID int64) (string, bool, error)
	CreateOrGetCustomer(ctx context.Context, name, email, phone string) (*storex.Customer, error)
}

// Session holds the snapshot of one conversation and runs the tool
// operations against the store. Calls on one Session are serialized.
type Session struct {
	mu       sync.Mutex
	store    Store
	snapshot *statex.Snapshot
	now      func() time.Time
}

func NewSession(store Store) *Session {
	now := time.Now
	return &Session{
		store:    store,
		snapshot: statex.NewSnapshot(now()),
		now:      now,
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Session) Snapshot() *statex.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone()
}

// LookupPolicy fetches a policy by number and makes it the current policy.
func (s *Session) LookupPolicy(ctx context.Context, policyNumber string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Info().Str("policy_number", policyNumber).Msg("lookup policy")

	policy, found, err := s.store.GetPolicyByNumber(ctx, policyNumber)
	if err != nil {
		return "", fmt.Errorf("lookup policy: %w", err)
	}
	if !found || policy == nil {
		return msgPolicyNotFound, nil
	}

	view := policyView(policy, policy.CustomerName)
	s.snapshot.SelectPolicy(policy.PolicyID, view, s.now())

	return "The policy details are: \n" + view.String(), nil
}

// GetPolicyDetails renders the current policy view.
func (s *Session) GetPolicyDetails(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Info().Msg("get policy details")

	if s.snapshot.Policy.IsEmpty() {
		return msgNoPolicySelected, nil
	}
	return "The policy details are: " + s.snapshot.Policy.String(), nil
}

type CreatePolicyArgs struct {
	PolicyNumber string
	PolicyType   string
	StartDate    string
	EndDate      string
	Status       string
	Premium      float64
}

// CreatePolicy inserts a policy owned by the current customer, if any, and
// makes it the current policy.
func (s *Session) CreatePolicy(ctx context.Context, args CreatePolicyArgs) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Info().
		Str("policy_number", args.PolicyNumber).
		Str("policy_type", args.PolicyType).
		Str("start_date", args.StartDate).
		Str("end_date", args.EndDate).
		Str("status", args.Status).
		Float64("premium", args.Premium).
		Msg("create policy")

	start, err := time.Parse(storex.DateLayout, strings.TrimSpace(args.StartDate))
	if err != nil {
		return fmt.Sprintf("The start date %q is not valid, please use the YYYY-MM-DD format.", args.StartDate), nil
	}
	end, err := time.Parse(storex.DateLayout, strings.TrimSpace(args.EndDate))
	if err != nil {
		return fmt.Sprintf("The end date %q is not valid, please use the YYYY-MM-DD format.", args.EndDate), nil
	}

	policy, err := s.store.CreatePolicy(ctx, storex.PolicyInput{
		CustomerID:   s.snapshot.CurrentCustomerID,
		PolicyNumber: args.PolicyNumber,
		PolicyType:   args.PolicyType,
		StartDate:    start,
		EndDate:      end,
		Status:       args.Status,
		Premium:      args.Premium,
	})
	if err != nil {
		return "", fmt.Errorf("create policy: %w", err)
	}
	if policy == nil {
		return msgPolicyCreateFailed, nil
	}

	customerName := policy.CustomerName
	if customerName == "" && s.snapshot.HasCustomer() {
		customerName = s.snapshot.CurrentCustomerName
	}
	view := policyView(policy, customerName)
	s.snapshot.SelectPolicy(policy.PolicyID, view, s.now())

	return "Policy created successfully!\n" + view.String(), nil
}

// FileClaim files a claim against the current policy. Without a current
// policy it returns guidance and does not touch the store.
func (s *Session) FileClaim(ctx context.Context, amount float64, description string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Info().Float64("amount", amount).Str("description", description).Msg("file claim")

	if !s.snapshot.HasPolicy() {
		return msgClaimNeedsPolicy, nil
	}

	policyID := *s.snapshot.CurrentPolicyID
	claim, err := s.store.CreateClaim(ctx, policyID, amount, description, storex.DefaultClaimStatus)
	if err != nil {
		return "", fmt.Errorf("file claim: %w", err)
	}

	view := statex.ClaimView{
		ClaimID:     strconv.FormatInt(claim.ClaimID, 10),
		PolicyID:    strconv.FormatInt(policyID, 10),
		Status:      claim.Status,
		Amount:      formatAmount(claim.Amount),
		Description: claim.Description,
	}
	s.snapshot.RecordClaim(view, s.now())

	return "I've filed a new claim for you. Claim Details: \n" + view.String(), nil
}

// LookupClaimStatus reports the status of a claim. It does not change the
// snapshot.
func (s *Session) LookupClaimStatus(ctx context.Context, claimID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Info().Int64("claim_id", claimID).Msg("lookup claim status")

	status, found, err := s.store.GetClaimStatus(ctx, claimID)
	if err != nil {
		return "", fmt.Errorf("lookup claim status: %w", err)
	}
	if !found || strings.TrimSpace(status) == "" {
		return fmt.Sprintf("I couldn't find a claim with number %d.", claimID), nil
	}
	return "The claim status is: " + status, nil
}

// CreateOrLookupCustomer registers the caller or retrieves the existing
// profile that shares the email or phone, and makes it the current customer.
func (s *Session) CreateOrLookupCustomer(ctx context.Context, name, email, phone string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Info().Str("name", name).Str("email", email).Str("phone", phone).Msg("create or lookup customer")

	customer, err := s.store.CreateOrGetCustomer(ctx, name, email, phone)
	if err != nil {
		return "", fmt.Errorf("create or lookup customer: %w", err)
	}

	view := statex.CustomerView{
		CustomerID: strconv.FormatInt(customer.CustomerID, 10),
		Name:       customer.Name,
		Email:      customer.Email,
		Phone:      customer.Phone,
	}
	s.snapshot.SelectCustomer(customer.CustomerID, customer.Name, view, s.now())

	return "Customer profile ready! Customer profile details: \n" + view.String() + ".", nil
}

func policyView(p *storex.Policy, customerName string) statex.PolicyView {
	return statex.PolicyView{
		PolicyNumber: p.PolicyNumber,
		CustomerName: customerName,
		PolicyType:   p.PolicyType,
		StartDate:    formatDate(p.StartDate),
		EndDate:      formatDate(p.EndDate),
		Status:       p.Status,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(storex.DateLayout)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
