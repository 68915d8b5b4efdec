package schema

import "strings"

// Role names carried in JWT claims.
const (
	RoleAdmin     = "admin"
	RoleReviewer  = "reviewer"
	RoleDataEntry = "dataentry"
)

// Capability is a coarse permission flag attached to a role.
type Capability string

const (
	CapViewDashboard Capability = "view_dashboard"
	CapViewCompanies Capability = "view_companies"
	CapViewReports   Capability = "view_reports"
	CapEdit          Capability = "edit"
	CapDelete        Capability = "delete"
	CapAdd           Capability = "add"
)

// RolePolicy couples capability flags with the field labels hidden from a
// role. Hidden fields are filtered on the read path and silently dropped on
// every write path, so a client bypassing the form cannot reach them.
type RolePolicy struct {
	Capabilities map[Capability]bool
	HiddenLabels []string
}

var sharedHidden = []string{
	"Website Designations",
	"PPP Business Demographics",
	"PPP NAICS Code",
	"PPP Business Owner Demographics",
	"LinkedIn Overview",
	"LinkedIn Followers",
	"BBB Type of Entity",
	"SoS Filing Type",
}

var dataEntryHidden = []string{
	// PPP restricted
	"FederalPay PPP Link",
	"FederalPay PPP (Url)",
	"PPP Company Name",
	"PPP Jobs Retained",
	"PPP Total Loan Size",
	"PPP Loan Size (1)",
	"PPP Loan Payroll Amount (1)",
	"PPP Loan Size (2)",
	"PPP Loan Payroll Amount (2)",
	"PPP Address",
	"PPP: Full Company MSA",
	"PPP: Company MSA",
	"PPP: Region",
	"PPP Business Demographics",
	"PPP NAICS Code",
	"PPP Business Owner Demographics",
	"PPP: Notes",
	// SoS restricted
	"SoS Company Name",
	"SoS Fictitious Names",
	"SoS Filing Type",
	"SoS Agent Address",
	"SoS Agent Street",
	"SoS Agent City",
	"SoS Agent State",
	"SoS Agent Zip Code",
	"SoS Agent Country",
	"SoS Agent: Full Company MSA",
	"SoS Principal Address",
	"SoS Principal Street",
	"SoS Principal City",
	"SoS Principal State",
	"SoS Principal Zip Code",
	"SoS Principal Country",
	"SoS Principal: Full Company MSA",
	"SoS Principal: Company MSA",
	"SoS Principal: Region",
	"SoS Registered Agent",
	"SoS Officers",
	"SoS Year Founded",
	"SoS: Notes",
}

var rolePolicies = map[string]RolePolicy{
	RoleAdmin: {
		Capabilities: map[Capability]bool{
			CapViewDashboard: true,
			CapViewCompanies: true,
			CapViewReports:   true,
			CapEdit:          true,
			CapDelete:        true,
			CapAdd:           true,
		},
		HiddenLabels: sharedHidden,
	},
	RoleReviewer: {
		Capabilities: map[Capability]bool{
			CapViewDashboard: true,
			CapViewCompanies: true,
			CapViewReports:   true,
			CapEdit:          true,
			CapDelete:        false,
			CapAdd:           true,
		},
		HiddenLabels: sharedHidden,
	},
	RoleDataEntry: {
		Capabilities: map[Capability]bool{
			CapViewDashboard: true,
			CapViewCompanies: true,
			CapViewReports:   false,
			CapEdit:          true,
			CapDelete:        false,
			CapAdd:           true,
		},
		HiddenLabels: append(append([]string(nil), sharedHidden...), dataEntryHidden...),
	},
}

// KnownRole reports whether the role exists in the policy table.
func KnownRole(role string) bool {
	_, ok := rolePolicies[strings.ToLower(role)]
	return ok
}

// RoleCan reports whether a role carries the given capability. Unknown roles
// have no capabilities.
func RoleCan(role string, cap Capability) bool {
	policy, ok := rolePolicies[strings.ToLower(role)]
	if !ok {
		return false
	}
	return policy.Capabilities[cap]
}

// HiddenKeys resolves a role's hidden field labels to storage keys. Unknown
// roles see nothing hidden beyond what the registry itself excludes, which
// keeps read-only integrations working if a new role is rolled out before
// this table learns about it.
func HiddenKeys(role string) map[string]struct{} {
	policy, ok := rolePolicies[strings.ToLower(role)]
	if !ok {
		return map[string]struct{}{}
	}
	hidden := make(map[string]struct{}, len(policy.HiddenLabels))
	for _, label := range policy.HiddenLabels {
		if key, known := ResolveKey(label); known {
			hidden[key] = struct{}{}
		}
	}
	return hidden
}

// Capabilities flattens a role's capability flags for the schema endpoint.
func Capabilities(role string) map[string]bool {
	policy, ok := rolePolicies[strings.ToLower(role)]
	if !ok {
		return map[string]bool{}
	}
	out := make(map[string]bool, len(policy.Capabilities))
	for cap, allowed := range policy.Capabilities {
		out[string(cap)] = allowed
	}
	return out
}

// VisibleFields returns the registry fields a role may see and edit, in
// registry order. Used to build the entry form and the schema endpoint.
func VisibleFields(role string) []Field {
	hidden := HiddenKeys(role)
	out := make([]Field, 0, len(Fields))
	for _, f := range Fields {
		if _, drop := hidden[f.Key]; drop {
			continue
		}
		out = append(out, f)
	}
	return out
}
