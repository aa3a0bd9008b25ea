package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPlayerHeader   = "Missing X-Player-ID header"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"

	// Generic service messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgConflictError      = "Your data changed, please retry"

	// Gacha and collection messages
	ErrMsgCharacterUnknownError  = "Character not found"
	ErrMsgCharacterNotOwnedErr   = "You don't own that character"
	ErrMsgCharacterBusyError     = "That character is away on an expedition"
	ErrMsgNotEnoughCoinsError    = "Not enough currency"
	ErrMsgNotEnoughDuplicatesErr = "Not enough duplicates to enhance"

	// Quest and reward messages
	ErrMsgAlreadyClaimedError  = "Already claimed"
	ErrMsgQuestIncompleteError = "Not completed yet"

	// Shop messages
	ErrMsgWeeklyLimitError = "Weekly purchase limit reached"
	ErrMsgItemUnknownError = "Item not found"

	// Expedition messages
	ErrMsgSlotBusyError        = "That expedition slot is already running"
	ErrMsgSlotIdleError        = "That expedition slot is empty"
	ErrMsgSlotNotCompleteError = "Expedition is not finished yet"

	// Board messages
	ErrMsgNoDiceError = "No dice left. Complete quests to earn more"

	// Skin messages
	ErrMsgSkinUnknownError  = "Skin not found"
	ErrMsgSkinNotOwnedError = "You don't own that skin"
)
