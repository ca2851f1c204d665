package services_test

import (
	"testing"

	"tokoadmin/internal/models"
	"tokoadmin/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAdminPolicy(t *testing.T) {
	policy := services.DefaultAdminPolicy()

	cases := []struct {
		name   string
		member *models.Member
		want   bool
	}{
		{"admin title", &models.Member{ProfileTitle: "admin"}, true},
		{"admin email", &models.Member{LoginEmail: "admin@example.com"}, true},
		{"both", &models.Member{ProfileTitle: "admin", LoginEmail: "admin@example.com"}, true},
		{"title case differs", &models.Member{ProfileTitle: "Admin"}, false},
		{"email case differs", &models.Member{LoginEmail: "Admin@example.com"}, false},
		{"other member", &models.Member{ProfileTitle: "editor", LoginEmail: "ed@example.com"}, false},
		{"empty profile", &models.Member{}, false},
		{"no member", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.IsAdmin(tc.member))
		})
	}
}

func TestStaticAdminPolicy_Configured(t *testing.T) {
	policy := services.StaticAdminPolicy{Titles: []string{"owner"}, Emails: []string{"ops@shop.test"}}

	assert.True(t, policy.IsAdmin(&models.Member{ProfileTitle: "owner"}))
	assert.True(t, policy.IsAdmin(&models.Member{LoginEmail: "ops@shop.test"}))
	assert.False(t, policy.IsAdmin(&models.Member{ProfileTitle: "admin"}))
}
