package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/member"
)

func TestTalents_UpdateSelf_RejectsFutureBirthDate(t *testing.T) {
	talents := &fakeTalents{}
	tal := talents.put(member.Talent{FullName: "Aimée", WhatsApp: "+25779000111", Category: "Santé"})
	uc := NewTalentUsecase(talents, &memFiles{}, nil)

	future := time.Now().AddDate(1, 0, 0)
	_, err := uc.UpdateSelf(context.Background(), Actor{ID: tal.ID, Role: account.RoleTalent}, TalentUpdate{BirthDate: &future})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if talents.byID[tal.ID].BirthDate != nil {
		t.Fatalf("birth date must not change on rejection")
	}

	past := time.Date(1998, 3, 14, 0, 0, 0, 0, time.UTC)
	updated, err := uc.UpdateSelf(context.Background(), Actor{ID: tal.ID, Role: account.RoleTalent}, TalentUpdate{BirthDate: &past})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.BirthDate == nil || !updated.BirthDate.Equal(past) {
		t.Fatalf("birth date not saved: %v", updated.BirthDate)
	}
}
