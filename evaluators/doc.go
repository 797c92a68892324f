// Package evaluators declares the fixed set of agentic evaluator kinds,
// decides which of them a record is eligible for, and builds the testing
// criteria submitted to the external evaluation service.
//
// The requirement table is the single source of truth: a static,
// immutable declaration of each evaluator's required and optional fields,
// consulted by value and never mutated at runtime. Eligibility is
// all-or-nothing per evaluator; an ineligible evaluator is skipped without
// blocking the others.
package evaluators
