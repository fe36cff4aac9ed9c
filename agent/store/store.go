package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// Store persists customers, policies and claims. Every operation runs on its
// own connection which is released when the operation returns.
type Store struct {
	db *bun.DB
}

func New(db *bun.DB) *Store {
	return &Store{db: db}
}

func (s *Store) withConn(ctx context.Context, fn func(conn bun.Conn) error) error {
	if s == nil || s.db == nil {
		return errors.New("nil store")
	}
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()
	return fn(conn)
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.withConn(ctx, func(conn bun.Conn) error {
		return conn.PingContext(ctx)
	})
}

// EnsureSchema creates the tables when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.withConn(ctx, func(conn bun.Conn) error {
		if _, err := conn.NewCreateTable().
			Model((*Customer)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return classify("create customers table", err)
		}

		if _, err := conn.NewCreateTable().
			Model((*Policy)(nil)).
			IfNotExists().
			ForeignKey(`("customer_id") REFERENCES "customers" ("customer_id")`).
			Exec(ctx); err != nil {
			return classify("create policies table", err)
		}

		if _, err := conn.NewCreateTable().
			Model((*Claim)(nil)).
			IfNotExists().
			ForeignKey(`("policy_id") REFERENCES "policies" ("policy_id")`).
			Exec(ctx); err != nil {
			return classify("create claims table", err)
		}
		return nil
	})
}

// CreatePolicy inserts a policy. The returned value echoes the input and
// carries the new id; CustomerName is left blank.
func (s *Store) CreatePolicy(ctx context.Context, in PolicyInput) (*Policy, error) {
	policy := &Policy{
		CustomerID:   in.CustomerID,
		PolicyNumber: strings.TrimSpace(in.PolicyNumber),
		PolicyType:   in.PolicyType,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Status:       in.Status,
		Premium:      in.Premium,
	}

	err := s.withConn(ctx, func(conn bun.Conn) error {
		_, err := conn.NewInsert().
			Model(policy).
			Returning("policy_id").
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, classify("insert policy", err)
	}
	return policy, nil
}

// GetPolicyByNumber returns the policy with the given number together with
// the owning customer's name. found is false when no policy matches.
func (s *Store) GetPolicyByNumber(ctx context.Context, policyNumber string) (*Policy, bool, error) {
	policy := new(Policy)

	err := s.withConn(ctx, func(conn bun.Conn) error {
		return conn.NewSelect().
			Model(policy).
			ColumnExpr("p.*").
			ColumnExpr("c.name AS customer_name").
			Join("LEFT JOIN customers AS c ON c.customer_id = p.customer_id").
			Where("p.policy_number = ?", strings.TrimSpace(policyNumber)).
			Limit(1).
			Scan(ctx)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, classify("select policy", err)
	}
	return policy, true, nil
}

// CreateClaim files a claim against policyID. An empty status defaults to
// DefaultClaimStatus.
func (s *Store) CreateClaim(ctx context.Context, policyID int64, amount float64, description string, status string) (*Claim, error) {
	if strings.TrimSpace(status) == "" {
		status = DefaultClaimStatus
	}
	claim := &Claim{
		PolicyID:    policyID,
		Status:      status,
		Amount:      amount,
		Description: description,
	}

	err := s.withConn(ctx, func(conn bun.Conn) error {
		_, err := conn.NewInsert().
			Model(claim).
			Returning("claim_id, date_filed").
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, classify("insert claim", err)
	}
	return claim, nil
}

// GetClaimStatus returns the status of a claim. found is false when the
// claim does not exist.
func (s *Store) GetClaimStatus(ctx context.Context, claimID int64) (string, bool, error) {
	var status sql.NullString

	err := s.withConn(ctx, func(conn bun.Conn) error {
		return conn.NewSelect().
			Model((*Claim)(nil)).
			Column("status").
			Where("cl.claim_id = ?", claimID).
			Limit(1).
			Scan(ctx, &status)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, classify("select claim status", err)
	}
	return status.String, true, nil
}

// CountClaims returns the number of stored claims.
func (s *Store) CountClaims(ctx context.Context) (int, error) {
	var n int
	err := s.withConn(ctx, func(conn bun.Conn) error {
		var err error
		n, err = conn.NewSelect().Model((*Claim)(nil)).Count(ctx)
		return err
	})
	if err != nil {
		return 0, classify("count claims", err)
	}
	return n, nil
}

// FindCustomerByEmailOrPhone returns the id of the first customer whose email
// OR phone matches. Empty arguments never match.
func (s *Store) FindCustomerByEmailOrPhone(ctx context.Context, email, phone string) (int64, bool, error) {
	var (
		id    int64
		found bool
	)
	err := s.withConn(ctx, func(conn bun.Conn) error {
		var err error
		id, found, err = findCustomerID(ctx, conn, email, phone)
		return err
	})
	if err != nil {
		return 0, false, classify("select customer", err)
	}
	return id, found, nil
}

// GetCustomer returns the customer with the given id.
func (s *Store) GetCustomer(ctx context.Context, customerID int64) (*Customer, bool, error) {
	customer := new(Customer)
	err := s.withConn(ctx, func(conn bun.Conn) error {
		return conn.NewSelect().
			Model(customer).
			Where("c.customer_id = ?", customerID).
			Scan(ctx)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, classify("select customer", err)
	}
	return customer, true, nil
}

// CreateOrGetCustomer returns the stored customer matching email or phone,
// ignoring the supplied name/email/phone, and inserts a new customer
// otherwise.
func (s *Store) CreateOrGetCustomer(ctx context.Context, name, email, phone string) (*Customer, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	customer := new(Customer)
	err := s.withConn(ctx, func(conn bun.Conn) error {
		id, found, err := findCustomerID(ctx, conn, email, phone)
		if err != nil {
			return err
		}
		if found {
			err := conn.NewSelect().
				Model(customer).
				Where("c.customer_id = ?", id).
				Scan(ctx)
			if err == nil {
				return nil
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			// row vanished between the two statements; fall through to insert
			customer = new(Customer)
		}

		customer.Name = strings.TrimSpace(name)
		customer.Email = email
		customer.Phone = phone
		_, err = conn.NewInsert().
			Model(customer).
			Returning("customer_id, created_at").
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, classify("create or get customer", err)
	}
	return customer, nil
}

func findCustomerID(ctx context.Context, conn bun.Conn, email, phone string) (int64, bool, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return 0, false, nil
	}

	var id int64
	err := conn.NewSelect().
		Model((*Customer)(nil)).
		Column("customer_id").
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			if email != "" {
				q = q.WhereOr("c.email = ?", email)
			}
			if phone != "" {
				q = q.WhereOr("c.phone = ?", phone)
			}
			return q
		}).
		OrderExpr("c.customer_id ASC").
		Limit(1).
		Scan(ctx, &id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
