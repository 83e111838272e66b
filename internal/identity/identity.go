// Package identity resolves the actor performing a request. StudyHub has no
// authentication yet, so the default provider returns a fixed placeholder id;
// a real provider can replace it without touching the endpoint code.
package identity

import "context"

// PlaceholderActorID is the fixed author id used until real accounts exist.
const PlaceholderActorID = "507f1f77bcf86cd799439011"

// Provider returns the identifier of the current actor.
type Provider interface {
	Actor(ctx context.Context) string
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) string

func (f ProviderFunc) Actor(ctx context.Context) string { return f(ctx) }

// Static always returns id.
func Static(id string) Provider {
	return ProviderFunc(func(context.Context) string { return id })
}

// Placeholder returns the provider used by the server today.
func Placeholder() Provider {
	return Static(PlaceholderActorID)
}
