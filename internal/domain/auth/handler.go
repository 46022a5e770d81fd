package auth

import (
	"net/http"
	"strings"

	"rescue-revolution/internal/domain/forms"
	"rescue-revolution/internal/domain/session"
	"rescue-revolution/internal/domain/toasts"
	"rescue-revolution/internal/middleware"
	"rescue-revolution/internal/platform/logger"
	"rescue-revolution/internal/ports/backend"
	"rescue-revolution/internal/views"

	"github.com/go-chi/chi/v5"
)

type Deps struct {
	Renderer *views.Renderer
	Sessions *session.Store
	Toasts   *toasts.Manager
	Gate     *forms.Gate
	API      backend.AuthAPI
	Log      logger.Logger
}

func RegisterRoutes(r chi.Router, d Deps) {
	r.Get("/login", loginPageHandler(d))
	r.Post("/login", loginHandler(d))
	r.Get("/register", registerPageHandler(d))
	r.Post("/register", registerHandler(d))
	r.Post("/logout", logoutHandler(d))
}

// LoginForm y RegisterForm conservan lo tipeado para re-render tras un
// fallo; las passwords nunca se re-renderizan.
type LoginForm struct {
	Username string
}

type RegisterForm struct {
	Username string
	Email    string
}

type loginPage struct {
	views.Base
	Form LoginForm
}

type registerPage struct {
	views.Base
	Form RegisterForm
}

func base(d Deps, w http.ResponseWriter, r *http.Request, title string) views.Base {
	sid := d.Sessions.SID(w, r)
	b := views.Base{Title: title, Toasts: d.Toasts.For(sid).Active()}
	if u, ok := middleware.GetUser(r.Context()); ok {
		b.User = &u
	}
	return b
}

func loginPageHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetUser(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		d.Renderer.Render(w, http.StatusOK, "login.html", loginPage{
			Base: base(d, w, r, "Login"),
			Form: LoginForm{},
		})
	}
}

func loginHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := d.Sessions.SID(w, r)
		queue := d.Toasts.For(sid)

		if err := r.ParseForm(); err != nil {
			queue.Show("Invalid form submission", toasts.SeverityError)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")

		rerender := func(status int) {
			d.Renderer.Render(w, status, "login.html", loginPage{
				Base: base(d, w, r, "Login"),
				Form: LoginForm{Username: username},
			})
		}

		if username == "" || password == "" {
			queue.Show("Username and password are required", toasts.SeverityError)
			rerender(http.StatusBadRequest)
			return
		}

		key := sid + ":login"
		if !d.Gate.TryBegin(key) {
			queue.Show("A submission is already in progress", toasts.SeverityInfo)
			rerender(http.StatusConflict)
			return
		}
		defer d.Gate.End(key)

		user, creds, err := d.API.Login(r.Context(), username, password)
		if err != nil {
			d.Log.Warn("auth: login failed", logger.Fields{"username": username, "err": err.Error()})
			queue.Show(backend.UserMessage(err, "Invalid credentials"), toasts.SeverityError)
			rerender(http.StatusOK)
			return
		}

		if err := d.Sessions.SetUser(w, r, user, creds); err != nil {
			d.Log.Error("auth: save session failed", logger.Fields{"err": err.Error()})
			queue.Show("Login failed", toasts.SeverityError)
			rerender(http.StatusOK)
			return
		}

		queue.Show("Logged in successfully", toasts.SeveritySuccess)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

func registerPageHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetUser(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		d.Renderer.Render(w, http.StatusOK, "register.html", registerPage{
			Base: base(d, w, r, "Create Account"),
			Form: RegisterForm{},
		})
	}
}

func registerHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := d.Sessions.SID(w, r)
		queue := d.Toasts.For(sid)

		if err := r.ParseForm(); err != nil {
			queue.Show("Invalid form submission", toasts.SeverityError)
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}

		form := RegisterForm{
			Username: strings.TrimSpace(r.FormValue("username")),
			Email:    strings.TrimSpace(r.FormValue("email")),
		}
		password := r.FormValue("password")
		confirm := r.FormValue("confirm_password")

		rerender := func(status int) {
			d.Renderer.Render(w, status, "register.html", registerPage{
				Base: base(d, w, r, "Create Account"),
				Form: form,
			})
		}

		if form.Username == "" || form.Email == "" || password == "" {
			queue.Show("Username, email and password are required", toasts.SeverityError)
			rerender(http.StatusBadRequest)
			return
		}
		if password != confirm {
			queue.Show("Passwords do not match", toasts.SeverityError)
			rerender(http.StatusBadRequest)
			return
		}

		key := sid + ":register"
		if !d.Gate.TryBegin(key) {
			queue.Show("A submission is already in progress", toasts.SeverityInfo)
			rerender(http.StatusConflict)
			return
		}
		defer d.Gate.End(key)

		if err := d.API.Register(r.Context(), form.Username, form.Email, password); err != nil {
			d.Log.Warn("auth: register failed", logger.Fields{"username": form.Username, "err": err.Error()})
			queue.Show(backend.UserMessage(err, "Registration failed"), toasts.SeverityError)
			rerender(http.StatusOK)
			return
		}

		// El registro no abre sesión en el backend; logueamos con las
		// mismas credenciales para que la sesión quede establecida.
		user, creds, err := d.API.Login(r.Context(), form.Username, password)
		if err != nil {
			d.Log.Warn("auth: post-register login failed", logger.Fields{"username": form.Username, "err": err.Error()})
			queue.Show("Account created. Please log in.", toasts.SeverityInfo)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if err := d.Sessions.SetUser(w, r, user, creds); err != nil {
			d.Log.Error("auth: save session failed", logger.Fields{"err": err.Error()})
			queue.Show("Account created. Please log in.", toasts.SeverityInfo)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		queue.Show("Account created successfully!", toasts.SeveritySuccess)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

func logoutHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := d.Sessions.SID(w, r)
		queue := d.Toasts.For(sid)

		if _, ok := middleware.GetUser(r.Context()); !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		// La sesión local solo se limpia si el backend confirmó la
		// invalidación; si falla, el usuario queda logueado localmente
		// contra una sesión remota posiblemente muerta.
		if err := d.API.Logout(r.Context(), d.Sessions.Credentials(r)); err != nil {
			d.Log.Warn("auth: logout failed", logger.Fields{"err": err.Error()})
			queue.Show(backend.UserMessage(err, "Logout failed"), toasts.SeverityError)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		_ = d.Sessions.Clear(w, r)
		queue.Show("Logged out successfully", toasts.SeverityInfo)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
