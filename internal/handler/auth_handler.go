package handler

import (
	"errors"
	"net/http"

	"github.com/ezguapp/medalert/internal/db"
	"github.com/ezguapp/medalert/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title":    "Iniciar sesión",
		"site":     a.siteName,
		"messages": takeFlashes(c),
	})
}

// Login handles the sign-in form. Asynchronous clients get a JSON verdict;
// plain form posts get a redirect or a flash message.
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := a.accounts.Authenticate(username, password)
	if err != nil {
		if wantsJSON(c) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "Usuario o contraseña incorrectos"})
			return
		}
		addFlash(c, "Usuario o contraseña incorrectos")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := a.startSession(c, user); err != nil {
		if wantsJSON(c) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "No se pudo guardar la sesión"})
			return
		}
		addFlash(c, "No se pudo guardar la sesión")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// ShowRegisterPage 渲染注册页面
func (a *API) ShowRegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"title":    "Crear cuenta",
		"site":     a.siteName,
		"messages": takeFlashes(c),
	})
}

// Register handles the sign-up form with the same dual response mode as
// Login. Validation misses surface as user-visible messages, not failures.
func (a *API) Register(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password1 := c.PostForm("password1")
	password2 := c.PostForm("password2")

	_, err := a.accounts.Register(username, email, password1, password2)
	if err != nil {
		message := registerErrorMessage(err)
		if wantsJSON(c) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": message})
			return
		}
		addFlash(c, message)
		c.Redirect(http.StatusFound, "/register")
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	addFlash(c, "¡Cuenta creada con éxito! Ya puedes iniciar sesión.")
	c.Redirect(http.StatusFound, "/login")
}

// Logout 清除会话并返回首页
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/")
}

func (a *API) startSession(c *gin.Context, user *db.User) error {
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	return session.Save()
}

func registerErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrPasswordMismatch):
		return "Las contraseñas no coinciden"
	case errors.Is(err, service.ErrUsernameTaken):
		return "El nombre de usuario ya existe"
	default:
		return "Completa todos los campos obligatorios"
	}
}
