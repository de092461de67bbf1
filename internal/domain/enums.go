package domain

type BudgetStatus string

const (
	BudgetSent        BudgetStatus = "sent"
	BudgetFollowingUp BudgetStatus = "following_up"
	BudgetOrderPlaced BudgetStatus = "order_placed"
	BudgetOnHold      BudgetStatus = "on_hold"
	BudgetInvoiced    BudgetStatus = "invoiced"
	BudgetLost        BudgetStatus = "lost"
)

// ValidBudgetStatuses is the canonical set of accepted budget status strings.
var ValidBudgetStatuses = map[BudgetStatus]bool{
	BudgetSent:        true,
	BudgetFollowingUp: true,
	BudgetOrderPlaced: true,
	BudgetOnHold:      true,
	BudgetInvoiced:    true,
	BudgetLost:        true,
}

// IsTerminal reports whether the status ends a budget's pipeline life.
// Terminal budgets never carry a scheduled follow-up.
func (s BudgetStatus) IsTerminal() bool {
	switch s {
	case BudgetInvoiced, BudgetLost:
		return true
	case BudgetSent, BudgetFollowingUp, BudgetOrderPlaced, BudgetOnHold:
		return false
	}
	return false
}

type FollowUpTag string

const (
	TagNone             FollowUpTag = ""
	TagWaitingResponse  FollowUpTag = "waiting_response"
	TagMeetingScheduled FollowUpTag = "meeting_scheduled"
	TagProposalRevised  FollowUpTag = "proposal_revised"
)

type LostReason string

const (
	LostReasonNone       LostReason = ""
	LostReasonPrice      LostReason = "price"
	LostReasonCompetitor LostReason = "competitor"
	LostReasonNoResponse LostReason = "no_response"
	LostReasonSplit      LostReason = "partial_split"
	LostReasonOther      LostReason = "other"
)
