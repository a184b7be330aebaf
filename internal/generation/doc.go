// Package generation defines the boundary between the application core and
// the external AI providers that produce media: an image generator and a
// speech synthesizer. It also defines the shared failure taxonomy those
// providers map their errors onto, so callers can distinguish client-fixable
// parameter problems from transient infrastructure failures without knowing
// which provider is behind the interface.
package generation
