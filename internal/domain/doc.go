// Package domain contains the core domain model for Blanks.
//
// The domain is persistence- and UI-agnostic: it does not depend on YAML parsing,
// the terminal, or the filesystem. Infra/adapters map into/from these types.
package domain
