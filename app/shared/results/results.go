// Package results carries the tagged success/failure result type used by
// service operations. Business failures travel in the Failure slot so callers
// can distinguish them structurally from infrastructure errors, which are
// returned as plain Go errors.
package results

// OperationResult holds either a success payload or a failure payload.
// At most one of the two is non-nil.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult wraps a success payload.
func SuccessResult[S any, F any](payload S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &payload}
}

// FailureResult wraps a failure payload.
func FailureResult[S any, F any](payload F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &payload}
}

func (r OperationResult[S, F]) IsSuccess() bool {
	return r.Success != nil
}

func (r OperationResult[S, F]) IsFailure() bool {
	return r.Failure != nil
}
