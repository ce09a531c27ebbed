package mysql

import (
	"context"
	"errors"

	"crediasesor-backoffice/internal/domain/permission"
	userDomain "crediasesor-backoffice/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

// Create inserts the user together with its Grants.
func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Omit("Grants").Save(u).Error
}

func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&permission.Grant{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&userDomain.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return userDomain.ErrNotFound
		}
		return nil
	})
}

func (r *UserRepository) first(ctx context.Context, query string, arg any) (*userDomain.User, error) {
	var out userDomain.User
	err := r.db.WithContext(ctx).Preload("Grants").Where(query, arg).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, userDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*userDomain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *UserRepository) EmailInUse(ctx context.Context, email string, exceptID uint64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&userDomain.User{}).
		Where("correo = ? AND id <> ?", email, exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *UserRepository) List(ctx context.Context, f userDomain.ListFilter) ([]userDomain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&userDomain.User{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("nombres LIKE ? OR apellidos LIKE ? OR correo LIKE ? OR username LIKE ?", like, like, like, like)
	}
	switch f.Role {
	case userDomain.RoleGroupAdmins:
		q = q.Where("role IN ?", []string{string(permission.RoleAdmin), string(permission.RoleSuperAdmin)})
	case userDomain.RoleGroupAdvisor:
		q = q.Where("role = ?", string(permission.RoleUser))
	}
	if f.Status != "" {
		q = q.Where("estado = ?", string(f.Status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	out := []userDomain.User{}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	err := q.Preload("Grants").Order("createdAt DESC, id DESC").Find(&out).Error
	return out, total, err
}

func (r *UserRepository) ListExcept(ctx context.Context, id uint64) ([]userDomain.User, error) {
	out := []userDomain.User{}
	err := r.db.WithContext(ctx).Where("id <> ?", id).Order("username").Find(&out).Error
	return out, err
}

func (r *UserRepository) Stats(ctx context.Context) (userDomain.Stats, error) {
	var s userDomain.Stats
	err := r.db.WithContext(ctx).
		Model(&userDomain.User{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN estado = ? THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN role IN ? THEN 1 ELSE 0 END), 0) AS admins,
			COALESCE(SUM(CASE WHEN role = ? THEN 1 ELSE 0 END), 0) AS advisors`,
			string(userDomain.StatusActive),
			[]string{string(permission.RoleAdmin), string(permission.RoleSuperAdmin)},
			string(permission.RoleUser)).
		Scan(&s).Error
	if err != nil {
		return s, err
	}
	s.Inactive = s.Total - s.Active
	return s, nil
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, id uint64, token *string) error {
	return r.db.WithContext(ctx).
		Model(&userDomain.User{}).
		Where("id = ?", id).
		Update("refreshToken", token).Error
}

func (r *UserRepository) ReplacePermissions(ctx context.Context, id uint64, set permission.Set) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&permission.Grant{}).Error; err != nil {
			return err
		}
		grants := set.Grants(id)
		if len(grants) == 0 {
			return nil
		}
		return tx.Create(&grants).Error
	})
}
