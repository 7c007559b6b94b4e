package controllers

import (
	"errors"
	"net/http"
	"time"

	"food-delivery/middleware"
	"food-delivery/models"
	"food-delivery/services"
	"food-delivery/utils"
)

// CustomerController handles customer registration and login
type CustomerController struct {
	Accounts services.AccountStore
}

func NewCustomerController(accounts services.AccountStore) *CustomerController {
	return &CustomerController{Accounts: accounts}
}

type customerRegistration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

// Register creates a customer account and logs it in
func (cc *CustomerController) Register(w http.ResponseWriter, r *http.Request) {
	var req customerRegistration
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, "register customer", err)
		return
	}
	req.Email = normalizeEmail(req.Email)
	if err := requireFields("name", req.Name, "email", req.Email, "password", req.Password); err != nil {
		utils.WriteError(w, "register customer", err)
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		utils.WriteError(w, "register customer", err)
		return
	}
	customer := &models.Customer{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Address:      req.Address,
		CreatedAt:    time.Now().UTC(),
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := cc.Accounts.CreateCustomer(ctx, customer); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			err = duplicateEmail()
		} else {
			err = storeFailure("create customer", err)
		}
		utils.WriteError(w, "register customer", err)
		return
	}

	token, err := utils.GenerateJWT(customer.ID, customer.Email, models.ActorCustomer)
	if err != nil {
		utils.WriteError(w, "register customer", storeFailure("sign token", err))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"ok":       true,
		"token":    token,
		"customer": customer,
	})
}

// Login checks the password and issues a token
func (cc *CustomerController) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeJSON(r, &creds); err != nil {
		utils.WriteError(w, "login customer", err)
		return
	}
	if err := creds.validate(); err != nil {
		utils.WriteError(w, "login customer", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	customer, err := cc.Accounts.FindCustomerByEmail(ctx, creds.Email)
	if err != nil {
		utils.WriteError(w, "login customer", storeFailure("find customer", err))
		return
	}
	if customer == nil || !passwordMatches(customer.PasswordHash, creds.Password) {
		utils.WriteError(w, "login customer", errInvalidCredentials)
		return
	}

	token, err := utils.GenerateJWT(customer.ID, customer.Email, models.ActorCustomer)
	if err != nil {
		utils.WriteError(w, "login customer", storeFailure("sign token", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "token": token, "customer": customer})
}

// Me returns the authenticated customer's profile
func (cc *CustomerController) Me(w http.ResponseWriter, r *http.Request) {
	who := middleware.Identity(r)
	if who.ID.IsZero() || who.Role != models.ActorCustomer {
		utils.WriteError(w, "customer profile", services.ErrUnauthenticated)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	customer, err := cc.Accounts.GetCustomer(ctx, who.ID)
	if err != nil {
		utils.WriteError(w, "customer profile", storeFailure("get customer", err))
		return
	}
	if customer == nil {
		utils.WriteError(w, "customer profile", services.ErrUnauthenticated)
		return
	}
	utils.WriteJSON(w, http.StatusOK, customer)
}
