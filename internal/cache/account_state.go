package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/botanical-decor/shop-api/internal/models"
)

const accountStateCacheTTL = 10 * time.Minute

// AccountState is a cached snapshot of the flags the auth middleware needs
// per request. It spares a profile lookup on every authenticated call;
// block and delete operations invalidate it immediately.
type AccountState struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	IsBlocked bool   `json:"is_blocked"`
	IsDeleted bool   `json:"is_deleted"`
	UpdatedAt int64  `json:"updated_at"`
}

func accountStateKey(userID uint) string {
	return fmt.Sprintf("auth:account:%d", userID)
}

// BuildAccountState derives the snapshot from a profile.
func BuildAccountState(profile *models.Profile) *AccountState {
	if profile == nil {
		return nil
	}
	return &AccountState{
		UserID:    profile.ID,
		Role:      profile.Role,
		IsBlocked: profile.IsBlocked,
		IsDeleted: profile.IsDeleted,
		UpdatedAt: time.Now().Unix(),
	}
}

// GetAccountState reads the snapshot. The bool reports a cache hit.
func GetAccountState(ctx context.Context, userID uint) (*AccountState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state AccountState
	hit, err := GetJSON(ctx, accountStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAccountState writes the snapshot.
func SetAccountState(ctx context.Context, state *AccountState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, accountStateKey(state.UserID), state, accountStateCacheTTL)
}

// DelAccountState drops the snapshot so the next request rereads the database.
func DelAccountState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, accountStateKey(userID))
}
