package relational

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/shoestock/internal/domain/user"
	apperrors "github.com/xiebiao/shoestock/pkg/errors"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
// 用户名唯一性由UNIQUE索引保证，冲突转换为ErrDuplicateUsername
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Username: u.Username,
		Password: u.Password,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrDuplicateUsername
		}
		return apperrors.Wrap(err, "Failed to create user")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	return nil
}

// FindByUsername 按用户名查找
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).Where("username = ?", username).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query user")
	}
	return toUser(&model), nil
}

// FindByID 按ID查找
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query user")
	}
	return toUser(&model), nil
}

func toUser(m *UserModel) *user.User {
	return &user.User{
		ID:        m.ID,
		Username:  m.Username,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
	}
}
