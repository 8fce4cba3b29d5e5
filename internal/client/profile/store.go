// Package profile persists the single local user profile record.
//
// The store never returns storage errors to its callers: reads degrade to
// "absent" and writes report a boolean, with a diagnostic logged in both
// cases.
package profile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/portal/internal/client/models"
	"github.com/dmitrijs2005/portal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/portal/internal/common"
	"github.com/dmitrijs2005/portal/internal/logging"
)

type Store struct {
	repo   metadata.Repository
	key    string
	now    func() time.Time
	logger logging.Logger
}

func NewStore(repo metadata.Repository, logger logging.Logger) *Store {
	return &Store{
		repo:   repo,
		key:    common.ProfileStorageKey,
		now:    time.Now,
		logger: logger.With("module", "profile_store"),
	}
}

// Read returns the stored profile, or nil if there is none or the stored
// payload cannot be decoded or lacks a required field.
func (s *Store) Read(ctx context.Context) *models.Profile {
	raw, ok, err := s.repo.Get(ctx, s.key)
	if err != nil {
		s.logger.Error(ctx, "error reading user profile", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		s.logger.Error(ctx, "error decoding user profile", "error", err)
		return nil
	}
	if err := Validate(p.Username, p.JobTitle); err != nil {
		s.logger.Warn(ctx, "invalid user profile structure in storage", "error", err)
		return nil
	}
	return &p
}

// Write replaces the stored profile with the given fields and a fresh
// UpdatedAt. It reports false if the fields are blank or storage fails.
func (s *Store) Write(ctx context.Context, username, jobTitle string) bool {
	if err := Validate(username, jobTitle); err != nil {
		s.logger.Warn(ctx, "refusing to save invalid user profile", "error", err)
		return false
	}

	p := models.Profile{
		Username:  username,
		JobTitle:  jobTitle,
		UpdatedAt: s.now().UTC(),
	}

	raw, err := json.Marshal(p)
	if err != nil {
		s.logger.Error(ctx, "error encoding user profile", "error", err)
		return false
	}
	if err := s.repo.Set(ctx, s.key, raw); err != nil {
		s.logger.Error(ctx, "error saving user profile", "error", err)
		return false
	}
	return true
}

// Remove deletes the stored profile. Removing an absent profile succeeds.
func (s *Store) Remove(ctx context.Context) bool {
	if err := s.repo.Delete(ctx, s.key); err != nil {
		s.logger.Error(ctx, "error removing user profile", "error", err)
		return false
	}
	return true
}

// Exists reports whether Read would return a profile.
func (s *Store) Exists(ctx context.Context) bool {
	return s.Read(ctx) != nil
}
