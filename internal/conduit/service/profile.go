package service

import (
	"context"

	"github.com/conduitlabs/conduit/internal/conduit/domain"
	"github.com/conduitlabs/conduit/internal/conduit/store"
	"github.com/google/uuid"
)

// ProfileService covers public profiles and the follow relationship.
type ProfileService struct {
	Store store.Store
}

// Get returns a profile with Following computed against the viewer.
func (s *ProfileService) Get(ctx context.Context, username string, viewer *uuid.UUID) (domain.Profile, error) {
	return s.Store.Profiles().GetProfile(ctx, username, viewer)
}

// Follow is idempotent. Following yourself returns store.ErrSelfFollow.
func (s *ProfileService) Follow(ctx context.Context, follower uuid.UUID, username string) (domain.Profile, error) {
	return s.Store.Profiles().Follow(ctx, follower, username)
}

// Unfollow is idempotent.
func (s *ProfileService) Unfollow(ctx context.Context, follower uuid.UUID, username string) (domain.Profile, error) {
	return s.Store.Profiles().Unfollow(ctx, follower, username)
}
