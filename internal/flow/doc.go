// Package flow implements the forgot-password and reset-password forms as
// server-side state machines.
//
// A flow instance corresponds to one page visit. It owns the submitted
// values, the per-field validation errors, the submission status and at most
// one flow-level message. Submissions against one instance are serialised:
// while an account service call is pending every further attempt fails with
// ErrSubmitInFlight.
//
//	Idle -> Submitting -> Success | Error
//	Error -> Idle            (next edit or submit attempt)
//	Success -> Navigated     (confirm flow only, after the redirect delay)
//	any -> Closed            (Close, registry eviction)
package flow
