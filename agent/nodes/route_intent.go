package orchestratornode

import (
	"fmt"
	"regexp"

	contractx "github.com/tanpawarit/insurance-callcenter-agent/agent/contract"
	promptx "github.com/tanpawarit/insurance-callcenter-agent/agent/prompt"
	"github.com/tanpawarit/insurance-callcenter-agent/agent/textx"
)

var (
	claimWord    = regexp.MustCompile(`(?i)\bclaims?\b`)
	statusWord   = regexp.MustCompile(`(?i)\b(status|update|progress|check)\b`)
	newClaimWord = regexp.MustCompile(`(?i)\b(new|file|filing|open|submit|make)\b`)
)

func RouteIntent(in *GraphState, prompts promptx.PromptSet) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Intent, in.ModelInput = routeIntent(in.Text, prompts)
	return in, nil
}

// routeIntent picks the guidance prompt for a caller message. Claim status
// questions need a claim number; policy lookups need a policy token.
func routeIntent(text string, prompts promptx.PromptSet) (contractx.Intent, string) {
	if claimWord.MatchString(text) {
		if id, ok := textx.ExtractClaimNumber(text); ok && statusWord.MatchString(text) {
			return contractx.IntentClaimStatus, prompts.ClaimStatusMessage(id)
		}
		if newClaimWord.MatchString(text) {
			return contractx.IntentNewClaim, prompts.NewClaim + "\nHere is the user's message: " + text
		}
	}
	if _, ok := textx.ExtractPolicyNumber(text); ok {
		return contractx.IntentLookup, prompts.LookupPolicyMessage(text)
	}
	return contractx.IntentGeneral, text
}
