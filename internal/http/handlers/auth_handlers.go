package handlers

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/product-catalog/internal/auth"
	"github.com/rogerio-castellano/product-catalog/internal/http/httperr"
	"github.com/rogerio-castellano/product-catalog/internal/models"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
	"github.com/rogerio-castellano/product-catalog/pkg/logger"
)

// RegisterHandler godoc
// @Summary Register a new user and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 201 {object} RegisterResult
// @Failure 400 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/v1/register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil {
		writeError(w, httperr.BadRequest("Cuerpo de la solicitud inválido"))
		return
	}

	if creds.Username == "" || creds.Password == "" {
		writeError(w, httperr.BadRequest("Faltan credenciales"))
		return
	}
	if len(creds.Username) < 3 || len(creds.Password) < 6 {
		writeError(w, httperr.BadRequest("Usuario o contraseña demasiado cortos"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password", logger.Err(err))
		writeError(w, httperr.Internal())
		return
	}

	user, err := userRepo.CreateUser(models.User{
		Username:     creds.Username,
		PasswordHash: string(hashed),
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			writeError(w, httperr.Conflict("El nombre de usuario ya existe"))
			return
		}
		log.Error("failed to register user", logger.Err(err))
		writeError(w, httperr.Internal())
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		log.Error("failed to generate token", logger.Err(err))
		writeError(w, httperr.Internal())
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResult{
		Message: "Usuario registrado",
		Token:   token,
	})
}

// LoginHandler godoc
// @Summary Authenticate a user and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 401 {object} map[string]any
// @Router /api/v1/login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil {
		writeError(w, httperr.BadRequest("Cuerpo de la solicitud inválido"))
		return
	}

	user, err := userRepo.GetByUsername(creds.Username)
	if err != nil {
		writeError(w, httperr.Unauthorized("Credenciales inválidas"))
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		writeError(w, httperr.Unauthorized("Credenciales inválidas"))
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		log.Error("failed to generate token", logger.Err(err))
		writeError(w, httperr.Internal())
		return
	}

	writeJSON(w, http.StatusOK, LoginResult{Token: token})
}
