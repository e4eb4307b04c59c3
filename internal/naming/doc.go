// Package naming decides where files go: extension extraction, the
// organize target layout and collision resolution.
//
// Files:
//   - extension.go: Extension, HasSuffixFold, OrganizeTarget, ValidBaseName
//   - collision.go: CollisionResolver, which applies a
//     [config.CollisionPolicy] to targets taken on disk or earlier in the
//     same run
package naming
