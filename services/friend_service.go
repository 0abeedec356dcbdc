package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rafiqapp/rafiq/models"
)

var (
	// ErrCodeNotFound reports an invite code that matches no user.
	ErrCodeNotFound = errors.New("invite code not found")
	// ErrSelfFriend reports a user trying to link their own code.
	ErrSelfFriend = errors.New("cannot add yourself")
	// ErrAlreadyFriends reports an existing link between the pair.
	ErrAlreadyFriends = errors.New("already friends")
)

// FriendService establishes symmetric friend links from invite codes.
type FriendService struct {
	db *gorm.DB
}

func NewFriendService(db *gorm.DB) *FriendService {
	return &FriendService{db: db}
}

// AddByCode resolves code to its owner and creates both directions of the
// link in one transaction. Codes compare case-insensitively.
func (s *FriendService) AddByCode(ctx context.Context, userID uint, code string) (*models.User, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var friend models.User
	if err := s.db.WithContext(ctx).Where("invite_code = ?", code).First(&friend).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	if friend.ID == userID {
		return nil, ErrSelfFriend
	}

	var existing models.Friend
	err := s.db.WithContext(ctx).Where("user_id = ? AND friend_user_id = ?", userID, friend.ID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyFriends
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		links := []models.Friend{
			{UserID: userID, FriendUserID: friend.ID},
			{UserID: friend.ID, FriendUserID: userID},
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return nil, err
	}
	return &friend, nil
}
