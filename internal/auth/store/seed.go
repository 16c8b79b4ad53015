package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"leavedesk/internal/auth/models"
	"leavedesk/internal/auth/password"
	"leavedesk/internal/platform/config"
	"leavedesk/pkg/platform/sentinel"
)

// SeedBootstrapAccounts ensures the fixed admin and employee accounts exist,
// creating each only if its email is absent. Safe to run on every startup.
func SeedBootstrapAccounts(ctx context.Context, users UserStore, hasher password.Hasher, seed config.Seed) error {
	accounts := []struct {
		name     string
		email    string
		password string
		role     models.Role
	}{
		{seed.AdminName, seed.AdminEmail, seed.AdminPassword, models.RoleAdmin},
		{seed.EmployeeName, seed.EmployeeEmail, seed.EmployeePassword, models.RoleEmployee},
	}

	for _, account := range accounts {
		_, err := users.FindByEmail(ctx, account.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return fmt.Errorf("look up seed account %s: %w", account.email, err)
		}

		hash, err := hasher.Hash(account.password)
		if err != nil {
			return fmt.Errorf("hash seed credential: %w", err)
		}
		err = users.Create(ctx, models.User{
			ID:           uuid.New(),
			Name:         account.name,
			Email:        account.email,
			PasswordHash: hash,
			Role:         account.role,
			CreatedAt:    time.Now().UTC(),
		})
		// A concurrent startup may have created it between the lookup and the
		// insert; that still satisfies the bootstrap contract.
		if err != nil && !errors.Is(err, sentinel.ErrAlreadyUsed) {
			return fmt.Errorf("create seed account %s: %w", account.email, err)
		}
	}
	return nil
}
