package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deppfellow/bookshelf/internal/model"
)

type UserRepository struct {
	repo
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{repo{db: db, table: "users"}}
}

// withAuthor expands the author linked to a user.
func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("Author")
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.conn(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return nil, r.classify(err)
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := r.conn(ctx).Scopes(withAuthor).Order("id").Find(&users).Error; err != nil {
		return nil, r.classify(err)
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.conn(ctx).Scopes(withAuthor).First(&user, id).Error; err != nil {
		return nil, r.classify(err)
	}
	return &user, nil
}

// Update applies changes to the user and returns it as stored afterwards.
func (r *UserRepository) Update(ctx context.Context, id uint, changes map[string]any) (*model.User, error) {
	var user model.User
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		if len(changes) > 0 {
			if err := tx.Model(&user).Updates(changes).Error; err != nil {
				return err
			}
		}
		user = model.User{}
		return tx.Scopes(withAuthor).First(&user, id).Error
	})
	if err != nil {
		return nil, r.classify(err)
	}
	return &user, nil
}

// Delete removes the user and returns its state before deletion.
func (r *UserRepository) Delete(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(withAuthor).First(&user, id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
	if err != nil {
		return nil, r.classify(err)
	}
	return &user, nil
}
