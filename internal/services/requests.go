package services

import "strings"

// The max= values below mirror the limits in models/limits.go.

// CreateDeckRequest is the body of POST /api/decks.
type CreateDeckRequest struct {
	UserID      int64   `json:"user_id" validate:"gt=0"`
	Name        string  `json:"name" validate:"required,max=64"`
	Description *string `json:"description" validate:"omitempty,max=512"`
}

// UpdateDeckRequest is the body of PUT /api/decks/{id}. A nil Description
// leaves the stored one untouched.
type UpdateDeckRequest struct {
	Name        string  `json:"name" validate:"required,max=64"`
	Description *string `json:"description" validate:"omitempty,max=512"`
}

type DeleteDecksRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

type CreateFlashcardRequest struct {
	DeckID int64  `json:"deck_id" validate:"gt=0"`
	Front  string `json:"front" validate:"required,max=128"`
	Back   string `json:"back" validate:"required,max=512"`
}

type UpdateFlashcardRequest struct {
	Front string `json:"front" validate:"required,max=128"`
	Back  string `json:"back" validate:"required,max=512"`
}

func (r *CreateDeckRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = trimOptional(r.Description)
}

func (r *UpdateDeckRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = trimOptional(r.Description)
}

func (r *CreateFlashcardRequest) normalize() {
	r.Front = strings.TrimSpace(r.Front)
	r.Back = strings.TrimSpace(r.Back)
}

func (r *UpdateFlashcardRequest) normalize() {
	r.Front = strings.TrimSpace(r.Front)
	r.Back = strings.TrimSpace(r.Back)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
