package guards

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/product-catalog/internal/auth"
	"github.com/rogerio-castellano/product-catalog/internal/http/httperr"
	"github.com/rogerio-castellano/product-catalog/internal/models"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
)

var userRepo repo.UserRepository

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

const credentialsMessage = "No se pudieron validar las credenciales"

// CurrentUser resolves the bearer credential to a user: verify the token
// signature, extract the subject, look the user up. Any failure along the
// way is the same 401 so callers cannot probe which step broke.
func CurrentUser(r *http.Request) (models.User, *httperr.Error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return models.User{}, httperr.Unauthorized(credentialsMessage)
	}

	token, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil || !token.Valid {
		return models.User{}, httperr.Unauthorized(credentialsMessage)
	}

	userID, err := auth.Subject(token)
	if err != nil {
		return models.User{}, httperr.Unauthorized(credentialsMessage)
	}

	user, err := userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return models.User{}, httperr.Unauthorized(credentialsMessage)
		}
		return models.User{}, httperr.Internal()
	}
	return user, nil
}

// ActiveUser is CurrentUser plus the is_active check. The token is decoded
// and the user fetched exactly once.
func ActiveUser(r *http.Request) (models.User, *httperr.Error) {
	user, herr := CurrentUser(r)
	if herr != nil {
		return models.User{}, herr
	}
	if !user.IsActive {
		return models.User{}, httperr.BadRequest("Usuario inactivo")
	}
	return user, nil
}

// AdminUser is ActiveUser plus the is_admin check.
func AdminUser(r *http.Request) (models.User, *httperr.Error) {
	user, herr := ActiveUser(r)
	if herr != nil {
		return models.User{}, herr
	}
	if !user.IsAdmin {
		return models.User{}, httperr.Forbidden("No tienes permisos suficientes")
	}
	return user, nil
}
