package repository

import "github.com/nexvolt/evretail-api/internal/domain/entity"

// UserRepository is the persistence port for users and the referral hierarchy.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	Delete(id string) error
	// ListByReferrer returns the direct referrals of a user.
	ListByReferrer(referrerID string) ([]*entity.User, error)
	// Downline returns the full referral subtree under rootID (root excluded),
	// breadth-first.
	Downline(rootID string) ([]*entity.User, error)
}
