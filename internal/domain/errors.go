package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Character errors
	ErrMsgCharacterUnknown  = "character not in roster"
	ErrMsgCharacterNotOwned = "character not owned"
	ErrMsgCharacterBusy     = "character is busy"

	// Wallet errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Enhancement errors
	ErrMsgInsufficientDuplicates = "insufficient duplicates"

	// Cycle errors
	ErrMsgAlreadyClaimed  = "reward already claimed"
	ErrMsgQuestIncomplete = "quest goal not reached"

	// Shop errors
	ErrMsgWeeklyLimitReached = "weekly purchase limit reached"
	ErrMsgItemUnknown        = "shop item not found"

	// Expedition errors
	ErrMsgSlotBusy        = "expedition slot is busy"
	ErrMsgSlotIdle        = "expedition slot is idle"
	ErrMsgSlotNotComplete = "expedition not complete yet"

	// Board errors
	ErrMsgNoDice = "no dice remaining"

	// Skin errors
	ErrMsgSkinNotOwned = "skin not owned"
	ErrMsgSkinUnknown  = "skin not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Character errors
	ErrCharacterUnknown  = errors.New(ErrMsgCharacterUnknown)
	ErrCharacterNotOwned = errors.New(ErrMsgCharacterNotOwned)
	ErrCharacterBusy     = errors.New(ErrMsgCharacterBusy)

	// Wallet errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Enhancement errors
	ErrInsufficientDuplicates = errors.New(ErrMsgInsufficientDuplicates)

	// Cycle errors
	ErrAlreadyClaimed  = errors.New(ErrMsgAlreadyClaimed)
	ErrQuestIncomplete = errors.New(ErrMsgQuestIncomplete)

	// Shop errors
	ErrWeeklyLimitReached = errors.New(ErrMsgWeeklyLimitReached)
	ErrItemUnknown        = errors.New(ErrMsgItemUnknown)

	// Expedition errors
	ErrSlotBusy        = errors.New(ErrMsgSlotBusy)
	ErrSlotIdle        = errors.New(ErrMsgSlotIdle)
	ErrSlotNotComplete = errors.New(ErrMsgSlotNotComplete)

	// Board errors
	ErrNoDice = errors.New(ErrMsgNoDice)

	// Skin errors
	ErrSkinNotOwned = errors.New(ErrMsgSkinNotOwned)
	ErrSkinUnknown  = errors.New(ErrMsgSkinUnknown)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
