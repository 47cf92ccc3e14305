package airlockrequest

// legalTransitions is the single source of truth for the request lifecycle.
// Both transition enforcement and allowed-action computation consult this
// table; a (from, to) pair absent here is illegal, which also rules out
// self-transitions.
var legalTransitions = map[Status][]Status{
	StatusDraft:               {StatusSubmitted, StatusCancelled},
	StatusSubmitted:           {StatusInReview, StatusCancelled},
	StatusInReview:            {StatusApprovalInProgress, StatusRejectionInProgress, StatusCancelled, StatusBlocked},
	StatusApprovalInProgress:  {StatusApproved},
	StatusRejectionInProgress: {StatusRejected},
	// approved, rejected, cancelled and blocked are terminal.
}

// IsLegalTransition reports whether a request may move from one status to
// another. Pure and total over the status cross-product.
func IsLegalTransition(from, to Status) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllStatuses enumerates every lifecycle status, for exhaustive checks.
func AllStatuses() []Status {
	return []Status{
		StatusDraft,
		StatusSubmitted,
		StatusInReview,
		StatusApprovalInProgress,
		StatusApproved,
		StatusRejectionInProgress,
		StatusRejected,
		StatusCancelled,
		StatusBlocked,
	}
}
