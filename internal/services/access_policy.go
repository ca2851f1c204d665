package services

import "tokoadmin/internal/models"

// AccessPolicy decides who may open the admin panel.
type AccessPolicy interface {
	IsAdmin(member *models.Member) bool
}

// StaticAdminPolicy grants access by exact profile title or login email.
type StaticAdminPolicy struct {
	Titles []string
	Emails []string
}

// DefaultAdminPolicy matches title "admin" or email "admin@example.com".
func DefaultAdminPolicy() StaticAdminPolicy {
	return StaticAdminPolicy{
		Titles: []string{"admin"},
		Emails: []string{"admin@example.com"},
	}
}

// IsAdmin implements AccessPolicy. Comparisons are exact; empty values never match.
func (p StaticAdminPolicy) IsAdmin(member *models.Member) bool {
	if member == nil {
		return false
	}
	return matchesExactly(member.ProfileTitle, p.Titles) || matchesExactly(member.LoginEmail, p.Emails)
}

func matchesExactly(value string, allowed []string) bool {
	if value == "" {
		return false
	}
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
