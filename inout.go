package loci

import "github.com/loci-dev/loci/internal/reflection"

// In marks a constructor parameter struct. When a constructor takes a single
// struct with In embedded anonymously, each exported field becomes an input,
// with tags controlling how it is obtained:
//
//   - `optional:"true"` - zero value when the input cannot be resolved
//   - `inject:"context"` - the request's context value
//   - `inject:"location"` - the request's location value
//   - `default:"literal"` - a static default (strings, bools, numbers)
//
// Untagged fields resolve through the locator, carrying the request's
// context and location down the construction chain. Fields of type Location
// receive the request location without needing a tag.
//
// Example:
//
//	type RendererParams struct {
//	    loci.In
//
//	    Theme    Theme
//	    Where    loci.Location
//	    Audit    AuditLog `optional:"true"`
//	    PageSize int      `default:"25"`
//	}
//
//	func NewRenderer(p RendererParams) *Renderer { ... }
//
// The In struct must be embedded anonymously:
//
//	type RendererParams struct {
//	    loci.In  // ✓ Correct - anonymous embedding
//	    // ...
//	}
//
//	type RendererParams struct {
//	    In loci.In  // ✗ Wrong - named field
//	    // ...
//	}
type In = reflection.In
