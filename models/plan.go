package models

// Subscription plans.
const (
	PlanStarter      = "starter"
	PlanBasic        = "basic"
	PlanProfessional = "professional"
	PlanAdvanced     = "advanced"
)

// UnlimitedClients marks a plan with no active-client ceiling.
const UnlimitedClients = -1

// planClientLimits maps each plan to its active-client seat limit.
var planClientLimits = map[string]int{
	PlanStarter:      5,
	PlanBasic:        20,
	PlanProfessional: 100,
	PlanAdvanced:     UnlimitedClients,
}

// PlanClientLimit returns the active-client limit for a plan and whether
// the plan is unlimited. Unknown plans get the starter limit, the
// smallest, so a corrupt plan field can never widen a tenant's quota.
func PlanClientLimit(plan string) (limit int, unlimited bool) {
	l, ok := planClientLimits[plan]
	if !ok {
		l = planClientLimits[PlanStarter]
	}
	return l, l == UnlimitedClients
}
