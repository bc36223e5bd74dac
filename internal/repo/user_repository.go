package repo

import (
	"errors"

	"github.com/rogerio-castellano/product-catalog/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	GetByID(id int) (models.User, error)
	GetByUsername(username string) (models.User, error)
	CreateUser(u models.User) (models.User, error)
}
