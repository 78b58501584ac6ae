package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kantodex/pokedex-backend/internal/user/domain"
	"github.com/kantodex/pokedex-backend/internal/user/repository"
	"github.com/kantodex/pokedex-backend/pkg/auth"
)

func userRepo(t *testing.T) domain.UserRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := repository.NewGormUserRepository(db)
	require.NoError(t, repo.AutoMigrate())
	return repo
}

func TestRegisterUser(t *testing.T) {
	repo := userRepo(t)
	h := NewRegisterUserHandler(repo)

	user, err := h.Handle(RegisterUserCommand{
		Username: "ash",
		Email:    "ash@pallet.town",
		Password: "pikachu123",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "pikachu123", user.Password, "password must be stored hashed")
	assert.True(t, auth.CheckPassword(user.Password, "pikachu123"))
}

func TestRegisterUserValidation(t *testing.T) {
	repo := userRepo(t)
	h := NewRegisterUserHandler(repo)

	_, err := h.Handle(RegisterUserCommand{Email: "a@b.c", Password: "secret1"})
	assert.Error(t, err)

	_, err = h.Handle(RegisterUserCommand{Username: "ash", Password: "secret1"})
	assert.Error(t, err)

	_, err = h.Handle(RegisterUserCommand{Username: "ash", Email: "a@b.c", Password: "short"})
	assert.Error(t, err)
}

func TestRegisterUserRejectsDuplicates(t *testing.T) {
	repo := userRepo(t)
	h := NewRegisterUserHandler(repo)

	_, err := h.Handle(RegisterUserCommand{Username: "ash", Email: "ash@pallet.town", Password: "pikachu123"})
	require.NoError(t, err)

	_, err = h.Handle(RegisterUserCommand{Username: "ash", Email: "other@pallet.town", Password: "pikachu123"})
	assert.Error(t, err)

	_, err = h.Handle(RegisterUserCommand{Username: "misty", Email: "ash@pallet.town", Password: "pikachu123"})
	assert.Error(t, err)
}

func TestLoginIssuesValidToken(t *testing.T) {
	repo := userRepo(t)
	register := NewRegisterUserHandler(repo)
	login := NewLoginUserHandler(repo)

	user, err := register.Handle(RegisterUserCommand{Username: "ash", Email: "ash@pallet.town", Password: "pikachu123"})
	require.NoError(t, err)

	result, err := login.Handle(LoginUserCommand{Username: "ash", Password: "pikachu123"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := auth.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.Identity(), claims.UserID)
	assert.Equal(t, "ash", claims.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := userRepo(t)
	register := NewRegisterUserHandler(repo)
	login := NewLoginUserHandler(repo)

	_, err := register.Handle(RegisterUserCommand{Username: "ash", Email: "ash@pallet.town", Password: "pikachu123"})
	require.NoError(t, err)

	_, err = login.Handle(LoginUserCommand{Username: "ash", Password: "wrong"})
	assert.Error(t, err)

	_, err = login.Handle(LoginUserCommand{Username: "nobody", Password: "pikachu123"})
	assert.Error(t, err)

	_, err = login.Handle(LoginUserCommand{Username: "", Password: ""})
	assert.Error(t, err)
}
