package models

// Limits enforced on user-supplied content. The length limits are repeated
// in the validate tags of the services request types; keep them in step.
const (
	MaxDeckNameLength        = 64
	MaxDeckDescriptionLength = 512
	MaxCardFrontLength       = 128
	MaxCardBackLength        = 512
	MaxCardsPerDeck          = 500
)
