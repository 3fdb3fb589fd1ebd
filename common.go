// SPDX-License-Identifier: MIT

package glas

// Version is the runtime's bootstrap-milestone version string. There
// is no release process yet, so this tracks the bootstrap milestone
// rather than a semver history; cmd/glas reports it via --version.
const Version = "0.1.0-bootstrap"
