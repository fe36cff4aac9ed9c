package prompt

import (
	_ "embed"
	"strconv"
	"strings"
)

var (
	//go:embed template/instructions.txt
	instructionsRaw string

	//go:embed template/welcome.txt
	welcomeRaw string

	//go:embed template/lookup_policy.txt
	lookupPolicyRaw string

	//go:embed template/claim_status.txt
	claimStatusRaw string

	//go:embed template/new_claim.txt
	newClaimRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Instructions string
	Welcome      string
	NewClaim     string

	lookupPolicy string
	claimStatus  string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Instructions: strings.TrimSpace(instructionsRaw),
		Welcome:      strings.TrimSpace(welcomeRaw),
		NewClaim:     strings.TrimSpace(newClaimRaw),
		lookupPolicy: strings.TrimSpace(lookupPolicyRaw),
		claimStatus:  strings.TrimSpace(claimStatusRaw),
	}
}

// LookupPolicyMessage wraps the caller's message with policy lookup guidance.
func (p PromptSet) LookupPolicyMessage(message string) string {
	return strings.ReplaceAll(p.lookupPolicy, "{{message}}", strings.TrimSpace(message))
}

// ClaimStatusMessage asks the model to report the status of claimID.
func (p PromptSet) ClaimStatusMessage(claimID int) string {
	return strings.ReplaceAll(p.claimStatus, "{{claim_id}}", strconv.Itoa(claimID))
}
