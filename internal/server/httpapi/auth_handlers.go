package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/server/validation"
	"github.com/gin-gonic/gin"
)

func (h *Handler) home(c *gin.Context) {
	data := gin.H{"Flash": h.popFlash(c)}
	if id := GetIdentity(c); id != nil {
		data["Username"] = id.Username
	}
	c.HTML(http.StatusOK, "index.html", data)
}

func (h *Handler) signupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{"Flash": h.popFlash(c)})
}

func (h *Handler) signup(c *gin.Context) {
	ctx := c.Request.Context()

	in, err := validation.Signup(c)
	if err != nil {
		c.HTML(http.StatusUnprocessableEntity, "signup.html", gin.H{"Error": signupProblem(err)})
		return
	}

	account, session, err := h.accounts.Signup(ctx, in)
	switch {
	case errors.Is(err, common.ErrEmailTaken):
		h.setFlash(c, "A User with that Email already exists! Please try again.")
		c.Redirect(http.StatusFound, signupPath)
		return
	case errors.Is(err, common.ErrUsernameTaken):
		h.setFlash(c, "A User with that name already exists! Please try again.")
		c.Redirect(http.StatusFound, signupPath)
		return
	case err != nil:
		h.log.Error(ctx, "signup failed", "error", err)
		c.HTML(http.StatusInternalServerError, "signup.html", gin.H{"Error": "Something went wrong. Please try again."})
		return
	}

	h.log.Info(ctx, "account created", "account_id", account.ID)
	h.setSessionCookie(c, session)
	c.Redirect(http.StatusFound, dashboardPath)
}

func signupProblem(err error) string {
	var fe *validation.FieldError
	switch {
	case errors.Is(err, common.ErrMissingKeys):
		return "Please fill in email, username and password."
	case errors.Is(err, common.ErrEmptyFields):
		return "Fields cannot be empty."
	case errors.As(err, &fe):
		return fmt.Sprintf("Invalid %s: %s.", fe.Field, fe.Reason)
	default:
		return "Invalid signup data."
	}
}

func (h *Handler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Flash": h.popFlash(c)})
}

func (h *Handler) login(c *gin.Context) {
	ctx := c.Request.Context()

	in, err := validation.Login(c)
	if err != nil {
		c.HTML(http.StatusUnprocessableEntity, "login.html", gin.H{"Error": "Please fill in email and password."})
		return
	}

	account, session, err := h.accounts.Login(ctx, in)
	switch {
	case errors.Is(err, common.ErrNoSuchUser):
		h.setFlash(c, fmt.Sprintf("A user with the email: %s doesn't exist.", in.Email))
		c.Redirect(http.StatusFound, loginPath)
		return
	case errors.Is(err, common.ErrIncorrectPassword):
		h.setFlash(c, "Incorrect password!")
		c.Redirect(http.StatusFound, loginPath)
		return
	case err != nil:
		h.log.Error(ctx, "login failed", "error", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Something went wrong. Please try again."})
		return
	}

	h.log.Info(ctx, "signed in", "account_id", account.ID)
	h.setSessionCookie(c, session)
	c.Redirect(http.StatusFound, dashboardPath)
}

func (h *Handler) logout(c *gin.Context) {
	ctx := c.Request.Context()
	id := GetIdentity(c)

	if err := h.accounts.Logout(ctx, *id); err != nil {
		h.log.Error(ctx, "logout failed", "account_id", id.AccountID, "error", err)
	}

	h.clearSessionCookie(c)
	h.setFlash(c, fmt.Sprintf("%s was logged out.", id.Username))
	c.Redirect(http.StatusSeeOther, loginPath)
}
