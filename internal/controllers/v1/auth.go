package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/budgetbook/backend/internal/auth"
	"github.com/budgetbook/backend/internal/httputil"
	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed. These routes are public.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", co.Register)

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", co.Login)

	r.OPTIONS("/refresh", httputil.OptionsPost)
	r.POST("/refresh", co.Refresh)

	r.OPTIONS("/logout", httputil.OptionsPost)
	r.POST("/logout", co.Logout)
}

// @Summary		Register
// @Description	Creates a new user account
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			user	body		RegisterEditable	true	"User"
// @Router			/v1/auth/register [post]
func (co Controller) Register(c *gin.Context) {
	var editable RegisterEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{Error: &s})
		return
	}

	hash, err := auth.HashPassword(editable.Password)
	if err != nil {
		s := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, UserResponse{Error: &s})
		return
	}

	user := models.User{
		Email:        editable.Email,
		PasswordHash: hash,
	}
	err = models.DB.Create(&user).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{Error: &s})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusCreated, UserResponse{Data: &data})
}

// @Summary		Login
// @Description	Verifies the credentials and issues an access and a refresh token
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	TokenResponse
// @Failure		400			{object}	TokenResponse
// @Failure		401			{object}	TokenResponse
// @Param			credentials	body		LoginEditable	true	"Credentials"
// @Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var editable LoginEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TokenResponse{Error: &s})
		return
	}

	var user models.User
	err = models.DB.First(&user, "email = ?", editable.Email).Error
	if errors.Is(err, models.ErrResourceNotFound) || (err == nil && !auth.CheckPassword(user.PasswordHash, editable.Password)) {
		// Same answer for unknown email and wrong password
		s := errCredentialsInvalid.Error()
		c.JSON(http.StatusUnauthorized, TokenResponse{Error: &s})
		return
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TokenResponse{Error: &s})
		return
	}

	pair, err := co.issueTokens(user)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TokenResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Data: &pair})
}

// @Summary		Refresh tokens
// @Description	Rotates a refresh token into a new token pair. The old refresh token is revoked.
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200		{object}	TokenResponse
// @Failure		400		{object}	TokenResponse
// @Failure		401		{object}	TokenResponse
// @Param			token	body		RefreshEditable	true	"Refresh token"
// @Router			/v1/auth/refresh [post]
func (co Controller) Refresh(c *gin.Context) {
	var editable RefreshEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TokenResponse{Error: &s})
		return
	}

	var pair TokenPair
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		var token models.RefreshToken
		err := tx.First(&token, "token_hash = ?", auth.HashRefreshToken(editable.RefreshToken)).Error
		if err != nil || !token.Valid(time.Now()) {
			return errRefreshTokenInvalid
		}

		token.Revoked = true
		err = tx.Model(&token).Select("Revoked").Updates(&token).Error
		if err != nil {
			return err
		}

		var user models.User
		err = tx.First(&user, "id = ?", token.UserID).Error
		if err != nil {
			return err
		}

		pair, err = co.issueTokensTx(tx, user)
		return err
	})
	if errors.Is(err, errRefreshTokenInvalid) {
		s := err.Error()
		c.JSON(http.StatusUnauthorized, TokenResponse{Error: &s, Code: auth.SessionExpiredError})
		return
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TokenResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Data: &pair})
}

// @Summary		Logout
// @Description	Revokes the refresh token, ending the session
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		204
// @Failure		400		{object}	httpError
// @Param			token	body		RefreshEditable	true	"Refresh token"
// @Router			/v1/auth/logout [post]
func (co Controller) Logout(c *gin.Context) {
	var editable RefreshEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// Revoking an unknown token is a no-op, logout is idempotent
	models.DB.Model(&models.RefreshToken{}).
		Where("token_hash = ?", auth.HashRefreshToken(editable.RefreshToken)).
		Update("revoked", true)

	c.JSON(http.StatusNoContent, nil)
}

func (co Controller) issueTokens(user models.User) (TokenPair, error) {
	return co.issueTokensTx(models.DB, user)
}

func (co Controller) issueTokensTx(tx *gorm.DB, user models.User) (TokenPair, error) {
	now := time.Now().In(time.UTC)

	access, err := co.Auth.NewAccessToken(user.ID, now)
	if err != nil {
		return TokenPair{}, err
	}

	cleartext, hash, err := auth.NewRefreshToken()
	if err != nil {
		return TokenPair{}, err
	}

	token := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: now.Add(co.Auth.RefreshTTL),
	}
	err = tx.Create(&token).Error
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: cleartext,
		User:         newUser(user),
	}, nil
}
