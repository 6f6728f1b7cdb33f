package service

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/shashankb2004/edublog/internal/domain"
	"github.com/shashankb2004/edublog/internal/errors"
	"github.com/shashankb2004/edublog/internal/logger"
)

const minPasswordLen = 6

type AuthService interface {
	Signup(username, email, password string) (domain.User, string, error)
	Login(username, password string) (domain.User, string, error)
	Profile(id domain.UserId) (domain.User, error)
	ChangePassword(id domain.UserId, currentPassword, newPassword string) error
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.User, error)
	UserByUsername(username string) (domain.User, error)
	UserById(id domain.UserId) (domain.User, error)
	UserExists(username, email string) (emailTaken, usernameTaken bool, err error)
	UpdatePassword(id domain.UserId, passHash string) error
}

type Jwt interface {
	NewToken(userId domain.UserId) (string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{storage: storage, jwt: jwt}
}

// Signup creates a new user after case-insensitive uniqueness checks and
// returns the created identity with a fresh access token.
// A duplicate email is reported before a duplicate username.
func (a *Auth) Signup(username, email, password string) (domain.User, string, error) {
	email = strings.ToLower(email)

	emailTaken, usernameTaken, err := a.storage.UserExists(username, email)
	if err != nil {
		return domain.User{}, "", err
	}
	if emailTaken {
		return domain.User{}, "", &errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusBadRequest}
	}
	if usernameTaken {
		return domain.User{}, "", &errors.ErrorWithStatusCode{Message: "Username already taken", StatusCode: http.StatusBadRequest}
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, "", err
	}

	user, err := a.storage.SaveUser(domain.User{Username: username, Email: email, PassHash: string(passHash)})
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := a.jwt.NewToken(user.Id)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return domain.User{}, "", err
	}

	return user, token, nil
}

// Login checks credentials and returns the user with an access token.
// Unknown username and wrong password are indistinguishable to the caller.
func (a *Auth) Login(username, password string) (domain.User, string, error) {
	user, err := a.storage.UserByUsername(username)
	if err != nil {
		// to not leak existing users
		if errors.IsNotFound(err) {
			return domain.User{}, "", &errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusBadRequest}
		}
		return domain.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return domain.User{}, "", &errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusBadRequest}
	}

	token, err := a.jwt.NewToken(user.Id)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return domain.User{}, "", err
	}

	return user, token, nil
}

func (a *Auth) Profile(id domain.UserId) (domain.User, error) {
	return a.storage.UserById(id)
}

// ChangePassword replaces the stored hash after verifying the current password.
func (a *Auth) ChangePassword(id domain.UserId, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return &errors.ErrorWithStatusCode{Message: "New password must be at least 6 characters long", StatusCode: http.StatusBadRequest}
	}

	user, err := a.storage.UserById(id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(currentPassword)); err != nil {
		return &errors.ErrorWithStatusCode{Message: "Current password is incorrect", StatusCode: http.StatusUnauthorized}
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "user_id", id, "error", err)
		return err
	}

	return a.storage.UpdatePassword(id, string(passHash))
}
