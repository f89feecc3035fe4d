package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// ErrValidation matches every *ValidationError
	ErrValidation = errors.New("validation failed")
	// ErrNotFound matches every *NotFoundError
	ErrNotFound = errors.New("not found")
	// ErrLocked matches every *LockedError
	ErrLocked = errors.New("locked")
)

// Validation rules reported in ValidationError.Rule
const (
	// Round rules
	RuleSeatCount          = "seat_count"
	RuleMissingPlayer      = "missing_player"
	RuleDuplicatePlayer    = "duplicate_player"
	RuleUnknownPlayer      = "unknown_player"
	RuleRawScoreMissing    = "raw_score_missing"
	RuleRawScoreNotNumber  = "raw_score_not_number"
	RuleRawScoreNotInteger = "raw_score_not_integer"
	RuleScoreTotal         = "score_total"

	// Roster rules
	RuleEmptyName = "empty_name"

	// Settings rules
	RuleRankBonusLength    = "rank_bonus_length"
	RuleRankBonusNotFinite = "rank_bonus_not_finite"
	RuleTopKRange          = "top_k_range"

	// Grouping rules
	RuleGroupSize            = "group_size"
	RuleGroupDuplicateMember = "group_duplicate_member"
	RuleGroupOverlap         = "group_overlap"
	RuleGroupUnknownMember   = "group_unknown_member"
	RuleGroupDuplicateID     = "group_duplicate_id"
)

// ValidationError reports malformed or rule-violating input
type ValidationError struct {
	Rule    string
	Message string
}

// NewValidationError creates a ValidationError for the given rule
func NewValidationError(rule, format string, args ...any) *ValidationError {
	return &ValidationError{
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

// Is matches ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Entity kinds reported in NotFoundError.Kind
const (
	KindPlayer = "player"
	KindGroup  = "group"
)

// NotFoundError reports a reference to an unknown entity
type NotFoundError struct {
	Kind string
	ID   string
}

// NewNotFoundError creates a NotFoundError
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// Is matches ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// LockedError reports a structural change attempted while locked
type LockedError struct {
	Reason string
}

func (e *LockedError) Error() string {
	return "locked: " + e.Reason
}

// Is matches ErrLocked
func (e *LockedError) Is(target error) bool {
	return target == ErrLocked
}

// ErrGroupingLocked is returned when grouping changes after rounds exist
var ErrGroupingLocked = &LockedError{Reason: "grouping cannot change once rounds have been recorded"}
