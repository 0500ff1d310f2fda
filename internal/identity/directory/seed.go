package directory

import (
	"context"
	"time"

	"kaziid/internal/identity"
	"kaziid/pkg/domain"
	"kaziid/pkg/profile"
)

// SeedDemoAccounts loads one known account per role into the directory.
// These stand in for a real authentication backend: they carry no password
// hash, so any password signs them in.
func SeedDemoAccounts(d Directory) []identity.Identity {
	now := time.Now()

	seeds := []struct {
		email   string
		role    domain.Role
		name    string
		profile profile.Profile
	}{
		{
			email: "amina.otieno@example.com",
			role:  domain.RoleYouth,
			name:  "Amina Otieno",
			profile: profile.Profile{
				"fullName":    "Amina Otieno",
				"nationalId":  "32456781",
				"dateOfBirth": "2002-03-14",
				"phone":       "+254700112233",
			},
		},
		{
			email: "hr@savannahworks.co.ke",
			role:  domain.RoleEmployer,
			name:  "Savannah Works",
			profile: profile.Profile{
				"orgName": "Savannah Works Ltd",
				"kraPin":  "P051234567X",
			},
		},
		{
			email: "youth.affairs@labour.go.ke",
			role:  domain.RoleGovernment,
			name:  "State Department",
			profile: profile.Profile{
				"ministry": "Ministry of Labour",
			},
		},
		{
			email: "registrar@nairobitech.ac.ke",
			role:  domain.RoleInstitution,
			name:  "Nairobi Tech",
			profile: profile.Profile{
				"institutionName": "Nairobi Technical Institute",
			},
		},
	}

	identities := make([]identity.Identity, 0, len(seeds))
	for _, s := range seeds {
		ident := identity.Identity{
			ID:         domain.NewIdentityID(),
			Email:      s.email,
			Role:       s.role,
			IsVerified: true,
			Profile:    s.profile,
			Domain:     identity.GenerateDomain(s.name, s.role, now),
			CreatedAt:  now,
		}
		_ = d.Create(context.Background(), identity.Account{Identity: ident})
		identities = append(identities, ident)
	}
	return identities
}
