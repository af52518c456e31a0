package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthController handles the sign-in/sign-up page and the signout action.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager) *AuthController {
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/auth", ac.AuthPage)
	router.POST("/auth", ac.Authenticate)
	router.POST("/signout", ac.Signout)
}

type authForm struct {
	AuthType        string `form:"authType"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	Fullname        string `form:"fullname"`
	ConfirmPassword string `form:"confirmPassword"`
}

// AuthPage renders the combined sign-in / sign-up form.
func (ac *AuthController) AuthPage(c *gin.Context) {
	c.HTML(http.StatusOK, "auth.html", gin.H{
		"Title":         "Get Started - ReadLog",
		"Authenticated": ac.sessionManager.IsAuthenticated(c.Request),
		"AuthType":      c.Query("authType"),
		"CSRFToken":     GetCSRFToken(c),
		"Errors":        map[string]string{},
	})
}

// Authenticate handles the form submission for both signin and signup,
// discriminated by the authType field.
func (ac *AuthController) Authenticate(c *gin.Context) {
	var form authForm
	_ = c.ShouldBind(&form)

	switch form.AuthType {
	case "signin":
		ac.signin(c, form)
	case "signup":
		ac.signup(c, form)
	default:
		ac.renderAuthError(c, form, map[string]string{"form": "Invalid form submission"})
	}
}

func (ac *AuthController) signin(c *gin.Context, form authForm) {
	fieldErrors := validateSigninForm(form)
	if len(fieldErrors) > 0 {
		ac.renderAuthError(c, form, fieldErrors)
		return
	}

	user, err := ac.service.Signin(form.Email, form.Password)
	if err != nil {
		msg := "Something went wrong."
		if errors.Is(err, ErrInvalidCredentials) {
			msg = ErrInvalidCredentials.Error()
		}
		ac.renderAuthError(c, form, map[string]string{"form": msg})
		return
	}

	if err := ac.sessionManager.SignIn(c.Request, user); err != nil {
		ac.renderAuthError(c, form, map[string]string{"form": "Failed to create session"})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (ac *AuthController) signup(c *gin.Context, form authForm) {
	fieldErrors := validateSignupForm(form)
	if len(fieldErrors) > 0 {
		ac.renderAuthError(c, form, fieldErrors)
		return
	}

	user, err := ac.service.Signup(form.Email, form.Fullname, form.Password)
	if err != nil {
		// Duplicate email and store failures alike surface as a generic
		// form-level message.
		ac.renderAuthError(c, form, map[string]string{"form": "Something went wrong."})
		return
	}

	if err := ac.sessionManager.SignIn(c.Request, user); err != nil {
		ac.renderAuthError(c, form, map[string]string{"form": "Failed to create session"})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Signout destroys the session and returns to the auth page.
func (ac *AuthController) Signout(c *gin.Context) {
	_ = ac.sessionManager.SignOut(c.Request)
	c.Redirect(http.StatusFound, "/auth")
}

func (ac *AuthController) renderAuthError(c *gin.Context, form authForm, fieldErrors map[string]string) {
	c.HTML(http.StatusBadRequest, "auth.html", gin.H{
		"Title":     "Get Started - ReadLog",
		"AuthType":  form.AuthType,
		"Email":     form.Email,
		"Fullname":  form.Fullname,
		"CSRFToken": GetCSRFToken(c),
		"Errors":    fieldErrors,
	})
}

func validateSigninForm(form authForm) map[string]string {
	fieldErrors := make(map[string]string)
	if !emailPattern.MatchString(form.Email) {
		fieldErrors["email"] = "Invalid email address"
	}
	if len(form.Password) < MinPasswordLength {
		fieldErrors["password"] = "Password must contain at least 6 characters"
	}
	return fieldErrors
}

func validateSignupForm(form authForm) map[string]string {
	fieldErrors := validateSigninForm(form)
	if len(form.Fullname) < 2 {
		fieldErrors["fullname"] = "Fullname must contain at least 2 characters"
	}
	if len(form.ConfirmPassword) < MinPasswordLength {
		fieldErrors["confirmPassword"] = "Password must contain at least 6 characters"
	} else if form.Password != form.ConfirmPassword {
		fieldErrors["confirmPassword"] = "Passwords don't match"
	}
	return fieldErrors
}
