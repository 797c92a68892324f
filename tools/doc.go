// Package tools manages tool definitions for evaluation: a registry keyed
// by unique tool name, plus a strict-schema linter that validates each
// definition once at registration time. Configuration errors (duplicate
// parameters, strict-mode violations) are fatal here and can never reach
// trace normalization.
package tools
