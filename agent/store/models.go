package store

import (
	"time"

	"github.com/uptrace/bun"
)

const DefaultClaimStatus = "Filed"

// DateLayout is the wire format for policy dates.
const DateLayout = "2006-01-02"

type Customer struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	CustomerID int64     `bun:"customer_id,pk,autoincrement"`
	Name       string    `bun:"name,type:varchar(255),notnull"`
	Email      string    `bun:"email,type:varchar(255),nullzero"`
	Phone      string    `bun:"phone,type:varchar(50),nullzero"`
	CreatedAt  time.Time `bun:"created_at,type:timestamp,nullzero,default:current_timestamp"`
}

type Policy struct {
	bun.BaseModel `bun:"table:policies,alias:p"`

	PolicyID     int64     `bun:"policy_id,pk,autoincrement"`
	CustomerID   *int64    `bun:"customer_id"`
	PolicyNumber string    `bun:"policy_number,type:varchar(50),unique,notnull"`
	PolicyType   string    `bun:"policy_type,type:varchar(100)"`
	StartDate    time.Time `bun:"start_date,type:date,nullzero"`
	EndDate      time.Time `bun:"end_date,type:date,nullzero"`
	Status       string    `bun:"status,type:varchar(50)"`
	Premium      float64   `bun:"premium,type:numeric(12,2)"`

	// CustomerName is filled by GetPolicyByNumber only.
	CustomerName string `bun:"customer_name,scanonly"`
}

type Claim struct {
	bun.BaseModel `bun:"table:claims,alias:cl"`

	ClaimID     int64     `bun:"claim_id,pk,autoincrement"`
	PolicyID    int64     `bun:"policy_id,notnull"`
	DateFiled   time.Time `bun:"date_filed,type:date,nullzero,default:current_date"`
	Status      string    `bun:"status,type:varchar(50)"`
	Amount      float64   `bun:"amount,type:numeric(12,2)"`
	Description string    `bun:"description,type:text"`
}

// PolicyInput carries the caller supplied fields of a new policy.
type PolicyInput struct {
	CustomerID   *int64
	PolicyNumber string
	PolicyType   string
	StartDate    time.Time
	EndDate      time.Time
	Status       string
	Premium      float64
}
