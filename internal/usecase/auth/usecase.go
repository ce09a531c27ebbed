package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crediasesor-backoffice/internal/domain/user"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive or suspended")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// HashPassword uses bcrypt's default cost (10).
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func checkPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

type Usecase struct {
	users  user.Repository
	tokens *Tokens
	log    *zap.Logger
}

func NewUsecase(users user.Repository, tokens *Tokens, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{users: users, tokens: tokens, log: log}
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*Session, error) {
	usr, err := u.users.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if errors.Is(err, user.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !checkPassword(usr.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}
	if !usr.CanSignIn() {
		return nil, ErrUserInactive
	}

	access, err := u.tokens.IssueAccess(usr.ID, usr.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := u.tokens.IssueRefresh(usr.ID)
	if err != nil {
		return nil, err
	}
	if err := u.users.SetRefreshToken(ctx, usr.ID, &refresh); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	u.log.Info("user logged in", zap.Uint64("user_id", usr.ID), zap.String("role", string(usr.Role)))
	return &Session{AccessToken: access, RefreshToken: refresh, User: sessionUser(usr)}, nil
}

func (u *Usecase) Logout(ctx context.Context, userID uint64) error {
	return u.users.SetRefreshToken(ctx, userID, nil)
}

// Refresh trades a stored refresh token for a new access token. A token that
// no longer matches the stored one (logged out, re-logged) is rejected.
func (u *Usecase) Refresh(ctx context.Context, raw string) (string, error) {
	claims, err := u.tokens.ParseRefresh(raw)
	if err != nil {
		return "", err
	}
	uid, err := claims.UserID()
	if err != nil {
		return "", err
	}
	usr, err := u.users.GetByID(ctx, uid)
	if errors.Is(err, user.ErrNotFound) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	if usr.RefreshToken == nil || *usr.RefreshToken != raw {
		return "", ErrInvalidToken
	}
	if !usr.CanSignIn() {
		return "", ErrUserInactive
	}
	return u.tokens.IssueAccess(usr.ID, usr.Role)
}

func (u *Usecase) ChangePassword(ctx context.Context, userID uint64, in ChangePasswordInput) error {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !checkPassword(usr.PasswordHash, in.OldPassword) {
		return ErrWrongPassword
	}
	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	usr.PasswordHash = hash
	return u.users.Save(ctx, usr)
}

func (u *Usecase) Profile(ctx context.Context, userID uint64) (*Profile, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profileOf(usr), nil
}

func (u *Usecase) UpdateProfile(ctx context.Context, userID uint64, in ProfileInput) (*Profile, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if usr.Email == nil || *usr.Email != email {
		taken, err := u.users.EmailInUse(ctx, email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, user.ErrEmailTaken
		}
	}

	usr.FirstNames = strings.TrimSpace(in.FirstNames)
	usr.LastNames = strings.TrimSpace(in.LastNames)
	usr.Email = &email
	if p := strings.TrimSpace(in.Phone); p != "" {
		usr.Phone = p
	}
	if b := strings.TrimSpace(in.Branch); b != "" {
		usr.Branch = b
	}
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}
	return profileOf(usr), nil
}

func (u *Usecase) UpdateTheme(ctx context.Context, userID uint64, theme user.Theme) (user.Theme, error) {
	if !theme.Valid() {
		return "", user.ErrInvalidTheme
	}
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	usr.Theme = theme
	if err := u.users.Save(ctx, usr); err != nil {
		return "", err
	}
	return usr.Theme, nil
}
