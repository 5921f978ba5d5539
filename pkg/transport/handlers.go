package transport

import (
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"shopfront/pkg/app"
	"shopfront/pkg/domain/model"
	"shopfront/pkg/domain/service"
)

const sessionCookie = "shopfront_session"

type Handler struct {
	app       *app.App
	templates *template.Template
}

func Router(a *app.App) (http.Handler, error) {
	templates, err := template.ParseGlob(filepath.Join(a.Config.TemplatesDir, "*.html"))
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	handler := &Handler{app: a, templates: templates}

	r := mux.NewRouter()
	r.HandleFunc("/login", handler.loginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", handler.login).Methods(http.MethodPost)
	r.HandleFunc("/signup", handler.signUp).Methods(http.MethodPost)
	r.HandleFunc("/logout", handler.logout).Methods(http.MethodPost)

	r.HandleFunc("/", handler.requirePage(handler.shopPage)).Methods(http.MethodGet)
	r.HandleFunc("/cart", handler.requirePage(handler.cartPage)).Methods(http.MethodGet)
	r.HandleFunc("/orders", handler.requirePage(handler.ordersPage)).Methods(http.MethodGet)

	s := r.PathPrefix("/api/v1").Subrouter()
	s.HandleFunc("/cart/add/{id}", handler.requireJSON(handler.cartAdd)).Methods(http.MethodPost)
	s.HandleFunc("/cart/inc/{id}", handler.requireJSON(handler.cartIncrement)).Methods(http.MethodPost)
	s.HandleFunc("/cart/dec/{id}", handler.requireJSON(handler.cartDecrement)).Methods(http.MethodPost)
	s.HandleFunc("/cart/remove/{id}", handler.requireJSON(handler.cartRemove)).Methods(http.MethodPost)
	s.HandleFunc("/cart/clear", handler.requireJSON(handler.cartClear)).Methods(http.MethodPost)
	s.HandleFunc("/checkout", handler.requireJSON(handler.checkout)).Methods(http.MethodPost)

	return logMiddleware(r), nil
}

/* ---------- auth surface ---------- */

type loginPageData struct {
	Error   string
	Message string
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", loginPageData{})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	remember := r.FormValue("remember") != ""

	h.app.Mu.Lock()
	session, err := h.app.Auth.Login(username, password, remember)
	h.app.Mu.Unlock()

	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			h.render(w, "login.html", loginPageData{Error: "Invalid username or password."})
			return
		}
		h.serverError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	h.app.Mu.Lock()
	err := h.app.Auth.SignUp(username, password)
	h.app.Mu.Unlock()

	switch {
	case errors.Is(err, model.ErrUserExists):
		h.render(w, "login.html", loginPageData{Error: "User exists."})
	case errors.Is(err, model.ErrBlankCredentials):
		h.render(w, "login.html", loginPageData{Error: "Username and password are required."})
	case err != nil:
		h.serverError(w, err)
	default:
		h.render(w, "login.html", loginPageData{Message: "Account created, you can log in now."})
	}
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.app.Mu.Lock()
	err := h.app.Auth.Logout()
	h.app.Mu.Unlock()

	if err != nil {
		h.serverError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// session returns the active session when the request cookie matches it.
func (h *Handler) session(r *http.Request) (*model.AuthSession, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}

	h.app.Mu.Lock()
	session, err := h.app.Auth.CurrentSession()
	h.app.Mu.Unlock()
	if err != nil || session.Token != cookie.Value {
		return nil, false
	}
	return session, true
}

func (h *Handler) requirePage(next func(http.ResponseWriter, *http.Request, *model.AuthSession)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := h.session(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r, session)
	}
}

func (h *Handler) requireJSON(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := h.session(r); !ok {
			h.writeJSON(w, http.StatusUnauthorized, apiResponse{Success: false, Message: "Not logged in."})
			return
		}
		next(w, r)
	}
}

/* ---------- pages ---------- */

type shopPageData struct {
	User       string
	Products   []model.Product
	Categories []string
	Query      service.CatalogQuery
	Sort       string
	Items      []model.LineItem
	Totals     model.Totals
	Units      int
}

func (h *Handler) shopPage(w http.ResponseWriter, r *http.Request, session *model.AuthSession) {
	query := service.CatalogQuery{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		MinPrice: parsePrice(r.URL.Query().Get("min")),
		MaxPrice: parsePrice(r.URL.Query().Get("max")),
	}
	sortParam := r.URL.Query().Get("sort")
	switch sortParam {
	case "price-asc":
		query.Sort = service.SortPriceAsc
	case "price-desc":
		query.Sort = service.SortPriceDesc
	}

	h.app.Mu.Lock()
	data := shopPageData{
		User:       session.User,
		Products:   h.app.Catalog.Filter(query),
		Categories: h.app.Catalog.Categories(),
		Query:      query,
		Sort:       sortParam,
		Items:      h.app.Cart.Snapshot(),
		Totals:     h.app.Cart.Totals(),
		Units:      h.app.Cart.Units(),
	}
	h.app.Mu.Unlock()

	h.render(w, "shop.html", data)
}

type cartPageData struct {
	User   string
	Items  []model.LineItem
	Totals model.Totals
	Units  int
}

func (h *Handler) cartPage(w http.ResponseWriter, r *http.Request, session *model.AuthSession) {
	h.app.Mu.Lock()
	data := cartPageData{
		User:   session.User,
		Items:  h.app.Cart.Snapshot(),
		Totals: h.app.Cart.Totals(),
		Units:  h.app.Cart.Units(),
	}
	h.app.Mu.Unlock()

	h.render(w, "cart.html", data)
}

type ordersPageData struct {
	User   string
	Orders []model.Order
}

func (h *Handler) ordersPage(w http.ResponseWriter, r *http.Request, session *model.AuthSession) {
	h.app.Mu.Lock()
	data := ordersPageData{User: session.User, Orders: h.app.Orders.Orders()}
	h.app.Mu.Unlock()

	h.render(w, "orders.html", data)
}

/* ---------- cart API ---------- */

type apiResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	CartCount int          `json:"cartCount"`
	Order     *model.Order `json:"order,omitempty"`
}

func (h *Handler) cartAdd(w http.ResponseWriter, r *http.Request) {
	qty := 1
	if raw := r.URL.Query().Get("qty"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid quantity."})
			return
		}
		qty = parsed
	}

	id := mux.Vars(r)["id"]
	h.app.Mu.Lock()
	defer h.app.Mu.Unlock()

	if _, err := h.app.Catalog.Product(id); err != nil {
		h.writeJSON(w, http.StatusNotFound, apiResponse{Success: false, Message: "Product not found."})
		return
	}
	if err := h.app.Cart.Add(id, qty); err != nil {
		h.serverError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Item added.", CartCount: h.app.Cart.Units()})
}

func (h *Handler) cartIncrement(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, "Quantity updated.", h.app.Cart.Increment)
}

func (h *Handler) cartDecrement(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, "Quantity updated.", h.app.Cart.Decrement)
}

func (h *Handler) cartRemove(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, "Item removed.", h.app.Cart.Remove)
}

func (h *Handler) mutateCart(w http.ResponseWriter, r *http.Request, message string, op func(string) error) {
	id := mux.Vars(r)["id"]

	h.app.Mu.Lock()
	defer h.app.Mu.Unlock()

	if err := op(id); err != nil {
		h.serverError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: message, CartCount: h.app.Cart.Units()})
}

func (h *Handler) cartClear(w http.ResponseWriter, r *http.Request) {
	h.app.Mu.Lock()
	defer h.app.Mu.Unlock()

	if err := h.app.Cart.Clear(); err != nil {
		h.serverError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Cart emptied.", CartCount: 0})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var customer model.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		h.writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid checkout payload."})
		return
	}

	h.app.Mu.Lock()
	defer h.app.Mu.Unlock()

	order, err := h.app.Orders.PlaceOrder(customer)
	switch {
	case errors.Is(err, model.ErrRequiredField):
		h.writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Please fill name, phone and address."})
	case errors.Is(err, model.ErrEmptyCart):
		h.writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Cart is empty! Add items first."})
	case err != nil:
		h.serverError(w, err)
	default:
		h.writeJSON(w, http.StatusOK, apiResponse{
			Success: true,
			Message: "Order placed! ID: " + order.ID,
			Order:   order,
		})
	}
}

/* ---------- helpers ---------- */

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		log.WithError(err).WithField("template", name).Error("render template")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	b, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = io.WriteString(w, string(b)); err != nil {
		log.WithField("err", err).Error("write response")
	}
}

func (h *Handler) serverError(w http.ResponseWriter, err error) {
	log.WithError(err).Error("request failed")
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func parsePrice(raw string) int64 {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
