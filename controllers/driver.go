package controllers

import (
	"errors"
	"net/http"

	"food-delivery/middleware"
	"food-delivery/models"
	"food-delivery/services"
	"food-delivery/utils"
)

// DriverController handles driver accounts and the delivery workflow
type DriverController struct {
	Accounts services.AccountStore
	Delivery *services.DeliveryService
}

func NewDriverController(accounts services.AccountStore, delivery *services.DeliveryService) *DriverController {
	return &DriverController{Accounts: accounts, Delivery: delivery}
}

type driverRegistration struct {
	FullName      string `json:"fullName"`
	Address       string `json:"address"`
	VehicleType   string `json:"vehicleType"`
	VehicleNumber string `json:"vehicleNumber"`
	LicenseNumber string `json:"licenseNumber"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	IsActive      *bool  `json:"isActive"`
}

// Register creates a driver account, active unless the body says otherwise
func (dc *DriverController) Register(w http.ResponseWriter, r *http.Request) {
	var req driverRegistration
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, "register driver", err)
		return
	}
	req.Email = normalizeEmail(req.Email)
	if err := requireFields(
		"fullName", req.FullName,
		"address", req.Address,
		"vehicleType", req.VehicleType,
		"vehicleNumber", req.VehicleNumber,
		"licenseNumber", req.LicenseNumber,
		"email", req.Email,
		"password", req.Password,
	); err != nil {
		utils.WriteError(w, "register driver", err)
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		utils.WriteError(w, "register driver", err)
		return
	}
	driver := &models.Driver{
		FullName:      req.FullName,
		Address:       req.Address,
		VehicleType:   req.VehicleType,
		VehicleNumber: req.VehicleNumber,
		LicenseNumber: req.LicenseNumber,
		IsActive:      req.IsActive == nil || *req.IsActive,
		Email:         req.Email,
		PasswordHash:  hash,
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := dc.Accounts.CreateDriver(ctx, driver); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			err = duplicateEmail()
		} else {
			err = storeFailure("create driver", err)
		}
		utils.WriteError(w, "register driver", err)
		return
	}

	token, err := utils.GenerateJWT(driver.ID, driver.Email, models.ActorDriver)
	if err != nil {
		utils.WriteError(w, "register driver", storeFailure("sign token", err))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{"ok": true, "token": token, "driver": driver})
}

// Login issues a driver token
func (dc *DriverController) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeJSON(r, &creds); err != nil {
		utils.WriteError(w, "login driver", err)
		return
	}
	if err := creds.validate(); err != nil {
		utils.WriteError(w, "login driver", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	driver, err := dc.Accounts.FindDriverByEmail(ctx, creds.Email)
	if err != nil {
		utils.WriteError(w, "login driver", storeFailure("find driver", err))
		return
	}
	if driver == nil || !passwordMatches(driver.PasswordHash, creds.Password) {
		utils.WriteError(w, "login driver", errInvalidCredentials)
		return
	}

	token, err := utils.GenerateJWT(driver.ID, driver.Email, models.ActorDriver)
	if err != nil {
		utils.WriteError(w, "login driver", storeFailure("sign token", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "token": token, "driver": driver})
}

func (dc *DriverController) Me(w http.ResponseWriter, r *http.Request) {
	who := middleware.Identity(r)
	if who.ID.IsZero() || who.Role != models.ActorDriver {
		utils.WriteError(w, "driver profile", services.ErrUnauthenticated)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	driver, err := dc.Accounts.GetDriver(ctx, who.ID)
	if err != nil {
		utils.WriteError(w, "driver profile", storeFailure("get driver", err))
		return
	}
	if driver == nil {
		utils.WriteError(w, "driver profile", services.ErrUnauthenticated)
		return
	}
	utils.WriteJSON(w, http.StatusOK, driver)
}

// SetActive toggles whether the driver takes new orders
func (dc *DriverController) SetActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsActive *bool `json:"isActive"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, "set driver active", err)
		return
	}
	if req.IsActive == nil {
		utils.WriteError(w, "set driver active", requireFields("isActive", ""))
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := dc.Delivery.SetActive(ctx, middleware.Identity(r), *req.IsActive); err != nil {
		utils.WriteError(w, "set driver active", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true, "isActive": *req.IsActive})
}

// PendingOrders lists the driver's assigned orders that still need work
func (dc *DriverController) PendingOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	orders, err := dc.Delivery.ListPendingForDriver(ctx, middleware.Identity(r))
	if err != nil {
		utils.WriteError(w, "list pending orders", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

// AvailableOrders lists unassigned orders an active driver can claim
func (dc *DriverController) AvailableOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	orders, err := dc.Delivery.ListAvailable(ctx, middleware.Identity(r))
	if err != nil {
		utils.WriteError(w, "list available orders", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (dc *DriverController) ClaimOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, "claim order", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	order, err := dc.Delivery.ClaimOrder(ctx, middleware.Identity(r), id)
	middleware.RecordOrderOperation("claim", err == nil)
	if err != nil {
		utils.WriteError(w, "claim order", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "order": order})
}

// StartVerification opens a delivery verification session; difficulty defaults to EASY
func (dc *DriverController) StartVerification(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, "start verification", err)
		return
	}
	var req struct {
		Difficulty string `json:"difficulty"`
	}
	if err := decodeOptionalJSON(r, &req); err != nil {
		utils.WriteError(w, "start verification", err)
		return
	}
	difficulty, err := models.ParseDifficulty(req.Difficulty)
	if err != nil {
		utils.WriteError(w, "start verification", validation(err))
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	session, err := dc.Delivery.StartVerification(ctx, middleware.Identity(r), id, difficulty)
	if err != nil {
		utils.WriteError(w, "start verification", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{"ok": true, "session": session})
}

// MarkDelivered completes an out-for-delivery order
func (dc *DriverController) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, "mark delivered", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	order, err := dc.Delivery.MarkDelivered(ctx, middleware.Identity(r), id)
	middleware.RecordOrderOperation("deliver", err == nil)
	if err != nil {
		utils.WriteError(w, "mark delivered", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "order": order})
}
