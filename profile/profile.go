// Package profile fixes the profile import workflow in one place. The four
// steps — parse the identity out of a locator, resolve the display name,
// fetch related raw records, convert them — are supplied per platform via
// Steps; the orchestration in Load never varies between platforms.
package profile

import "context"

// Profile is the aggregate produced by a completed import workflow.
// Friends only ever contains values produced by the Convert step, never
// raw backend records.
type Profile struct {
	// Identity is the platform identifier extracted from the locator.
	Identity string `json:"identity"`

	// Name is the resolved display name.
	Name string `json:"name"`

	// Friends are related profiles, in the order the backend returned them.
	Friends []Profile `json:"friends,omitempty"`
}

// Steps supplies the four workflow steps for one platform. R is the raw
// related-record type the platform backend returns; it never crosses the
// package boundary — Convert turns it into Profiles.
type Steps[R any] struct {
	// ParseIdentity extracts the platform identifier from an opaque
	// locator such as a profile URL.
	ParseIdentity func(ctx context.Context, locator string) (string, error)

	// DisplayName resolves the display name for an identity.
	DisplayName func(ctx context.Context, identity string) (string, error)

	// FetchRelated fetches the raw related records for an identity.
	// An empty result is valid; backend failures must be returned, never
	// swallowed.
	FetchRelated func(ctx context.Context, identity string) ([]R, error)

	// Convert transforms raw records into profiles. It must be pure and
	// preserve input order.
	Convert func(raw []R) ([]Profile, error)
}

// Validate reports the first nil step, if any.
func (s Steps[R]) Validate() error {
	switch {
	case s.ParseIdentity == nil:
		return &StepError{Step: StepParseIdentity, Err: errNilStep}
	case s.DisplayName == nil:
		return &StepError{Step: StepDisplayName, Err: errNilStep}
	case s.FetchRelated == nil:
		return &StepError{Step: StepFetchRelated, Err: errNilStep}
	case s.Convert == nil:
		return &StepError{Step: StepConvert, Err: errNilStep}
	}
	return nil
}

// Load runs the import workflow: parse identity, resolve display name,
// fetch related records, convert. The order is fixed and any step failure
// aborts the whole workflow — partial results are never returned.
//
// This is a package-level generic function because Go does not allow
// generic methods on non-generic receiver types.
func Load[R any](ctx context.Context, steps Steps[R], locator string) (*Profile, error) {
	if err := steps.Validate(); err != nil {
		return nil, err
	}

	identity, err := steps.ParseIdentity(ctx, locator)
	if err != nil {
		return nil, &StepError{Step: StepParseIdentity, Err: err}
	}

	name, err := steps.DisplayName(ctx, identity)
	if err != nil {
		return nil, &StepError{Step: StepDisplayName, Err: err}
	}

	raw, err := steps.FetchRelated(ctx, identity)
	if err != nil {
		return nil, &StepError{Step: StepFetchRelated, Err: err}
	}

	friends, err := steps.Convert(raw)
	if err != nil {
		return nil, &StepError{Step: StepConvert, Err: err}
	}

	return &Profile{
		Identity: identity,
		Name:     name,
		Friends:  friends,
	}, nil
}
