package cart

import "context"

// Store is the persistence boundary for carts. Implementations keep the cart
// alive across page reloads for the same session. A session with no saved
// cart (or an unreadable one) loads as an empty cart, never as an error.
type Store interface {
	// Load returns the cart for the session, or a fresh empty cart
	Load(ctx context.Context, sessionID string) (*Cart, error)

	// Save persists the full cart state for its session
	Save(ctx context.Context, cart *Cart) error

	// Delete removes the saved cart for the session
	Delete(ctx context.Context, sessionID string) error
}
