package tool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/insurance-callcenter-agent/agent/contract"
)

const (
	ToolLookupPolicy           = "lookup_policy"
	ToolGetPolicyDetails       = "get_policy_details"
	ToolCreatePolicy           = "create_policy"
	ToolFileClaim              = "file_claim"
	ToolLookupClaimStatus      = "lookup_claim_status"
	ToolCreateOrLookupCustomer = "create_or_lookup_customer"
)

type handlerFunc func(ctx context.Context, s *Session, args map[string]any) (string, error)

// Definition pairs a tool's schema with its handler.
type Definition struct {
	Info    *schema.ToolInfo
	handler handlerFunc
}

var registry = sync.OnceValue(buildRegistry)

func buildRegistry() map[string]Definition {
	defs := []Definition{
		{
			Info: &schema.ToolInfo{
				Name: ToolLookupPolicy,
				Desc: "Lookup an insurance policy by its policy number",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"policy_number": {Type: schema.String, Desc: "The policy number to lookup", Required: true},
				}),
			},
			handler: func(ctx context.Context, s *Session, args map[string]any) (string, error) {
				number, err := policyNumberArg(args, "policy_number")
				if err != nil {
					return "", err
				}
				return s.LookupPolicy(ctx, number)
			},
		},
		{
			Info: &schema.ToolInfo{
				Name:        ToolGetPolicyDetails,
				Desc:        "Get the details of the current policy",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
			},
			handler: func(ctx context.Context, s *Session, _ map[string]any) (string, error) {
				return s.GetPolicyDetails(ctx)
			},
		},
		{
			Info: &schema.ToolInfo{
				Name: ToolCreatePolicy,
				Desc: "Create a new insurance policy for the current customer",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"policy_number": {Type: schema.String, Desc: "The policy number", Required: true},
					"policy_type":   {Type: schema.String, Desc: "The type of policy (e.g., General Liability)", Required: true},
					"start_date":    {Type: schema.String, Desc: "The policy start date (YYYY-MM-DD)", Required: true},
					"end_date":      {Type: schema.String, Desc: "The policy end date (YYYY-MM-DD)", Required: true},
					"status":        {Type: schema.String, Desc: "The status of the policy (e.g., Active, Inactive)", Required: true},
					"premium":       {Type: schema.Number, Desc: "The premium amount for the policy", Required: true},
				}),
			},
			handler: func(ctx context.Context, s *Session, args map[string]any) (string, error) {
				var in CreatePolicyArgs
				var err error
				if in.PolicyNumber, err = newPolicyNumberArg(args, "policy_number"); err != nil {
					return "", err
				}
				if in.PolicyType, err = stringArg(args, "policy_type", true); err != nil {
					return "", err
				}
				if in.StartDate, err = stringArg(args, "start_date", true); err != nil {
					return "", err
				}
				if in.EndDate, err = stringArg(args, "end_date", true); err != nil {
					return "", err
				}
				if in.Status, err = stringArg(args, "status", true); err != nil {
					return "", err
				}
				if in.Premium, err = floatArg(args, "premium"); err != nil {
					return "", err
				}
				return s.CreatePolicy(ctx, in)
			},
		},
		{
			Info: &schema.ToolInfo{
				Name: ToolFileClaim,
				Desc: "File a new claim for the current policy",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"amount":      {Type: schema.Number, Desc: "The amount of the claim", Required: true},
					"description": {Type: schema.String, Desc: "The description of the claim", Required: true},
				}),
			},
			handler: func(ctx context.Context, s *Session, args map[string]any) (string, error) {
				amount, err := floatArg(args, "amount")
				if err != nil {
					return "", err
				}
				description, err := stringArg(args, "description", true)
				if err != nil {
					return "", err
				}
				return s.FileClaim(ctx, amount, description)
			},
		},
		{
			Info: &schema.ToolInfo{
				Name: ToolLookupClaimStatus,
				Desc: "Lookup a claim status by claim number",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"claim_id": {Type: schema.Integer, Desc: "The claim number to check", Required: true},
				}),
			},
			handler: func(ctx context.Context, s *Session, args map[string]any) (string, error) {
				claimID, err := claimIDArg(args, "claim_id")
				if err != nil {
					return "", err
				}
				return s.LookupClaimStatus(ctx, claimID)
			},
		},
		{
			Info: &schema.ToolInfo{
				Name: ToolCreateOrLookupCustomer,
				Desc: "Register or retrieve a customer profile",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"customer_name":  {Type: schema.String, Desc: "The full name of the customer", Required: true},
					"customer_email": {Type: schema.String, Desc: "The email of the customer"},
					"customer_phone": {Type: schema.String, Desc: "The phone number of the customer"},
				}),
			},
			handler: func(ctx context.Context, s *Session, args map[string]any) (string, error) {
				name, err := stringArg(args, "customer_name", true)
				if err != nil {
					return "", err
				}
				email, err := stringArg(args, "customer_email", false)
				if err != nil {
					return "", err
				}
				phone, err := stringArg(args, "customer_phone", false)
				if err != nil {
					return "", err
				}
				return s.CreateOrLookupCustomer(ctx, name, email, phone)
			},
		},
	}

	out := make(map[string]Definition, len(defs))
	for _, d := range defs {
		out[d.Info.Name] = d
	}
	return out
}

// toolOrder fixes the catalog order presented to the model.
var toolOrder = []string{
	ToolLookupPolicy,
	ToolGetPolicyDetails,
	ToolCreatePolicy,
	ToolFileClaim,
	ToolLookupClaimStatus,
	ToolCreateOrLookupCustomer,
}

// Catalog returns the schema of every tool.
func Catalog() []*schema.ToolInfo {
	defs := registry()
	infos := make([]*schema.ToolInfo, 0, len(toolOrder))
	for _, name := range toolOrder {
		infos = append(infos, defs[name].Info)
	}
	return infos
}

// Lookup returns the definition registered under name.
func Lookup(name string) (Definition, bool) {
	d, ok := registry()[name]
	return d, ok
}

// BuildForSession returns the tool schemas together with an executor bound
// to session.
func BuildForSession(session *Session) ([]*schema.ToolInfo, contractx.ToolExecutor) {
	return Catalog(), NewExecutor(session)
}

func NewExecutor(session *Session) contractx.ToolExecutor {
	fallback := DefaultExecutor()
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		def, ok := Lookup(tool)
		if !ok || session == nil {
			return fallback(ctx, tool, args)
		}
		if args == nil {
			args = map[string]any{}
		}

		text, err := def.handler(ctx, session, args)
		if err != nil {
			var argErr *argumentError
			if errors.As(err, &argErr) {
				return contractx.ToolResult{Tool: tool, Error: argErr.Error()}, nil
			}
			return contractx.ToolResult{Tool: tool}, err
		}
		return contractx.ToolResult{Tool: tool, Result: text}, nil
	}
}

func DefaultExecutor() contractx.ToolExecutor {
	return func(ctx context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("tool=%s is unavailable: %v", tool, contractx.ErrToolUnavailable),
		}, nil
	}
}
