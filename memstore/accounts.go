package memstore

import (
	"context"
	"strings"
	"sync"

	"food-delivery/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Accounts holds customer, restaurant admin and driver logins. Emails are unique per kind.
type Accounts struct {
	mu        sync.Mutex
	customers map[primitive.ObjectID]models.Customer
	admins    map[primitive.ObjectID]models.RestaurantAdmin
	drivers   map[primitive.ObjectID]models.Driver
}

func NewAccounts() *Accounts {
	return &Accounts{
		customers: make(map[primitive.ObjectID]models.Customer),
		admins:    make(map[primitive.ObjectID]models.RestaurantAdmin),
		drivers:   make(map[primitive.ObjectID]models.Driver),
	}
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (a *Accounts) CreateCustomer(_ context.Context, c *models.Customer) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, existing := range a.customers {
		if sameEmail(existing.Email, c.Email) {
			return models.ErrDuplicate
		}
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	a.customers[c.ID] = *c
	return nil
}

func (a *Accounts) GetCustomer(_ context.Context, id primitive.ObjectID) (*models.Customer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, ok := a.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (a *Accounts) FindCustomerByEmail(_ context.Context, email string) (*models.Customer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, c := range a.customers {
		if sameEmail(c.Email, email) {
			return &c, nil
		}
	}
	return nil, nil
}

func (a *Accounts) CreateRestaurantAdmin(_ context.Context, admin *models.RestaurantAdmin) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, existing := range a.admins {
		if sameEmail(existing.Email, admin.Email) {
			return models.ErrDuplicate
		}
	}
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	a.admins[admin.ID] = *admin
	return nil
}

func (a *Accounts) FindRestaurantAdminByEmail(_ context.Context, email string) (*models.RestaurantAdmin, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, admin := range a.admins {
		if sameEmail(admin.Email, email) {
			return &admin, nil
		}
	}
	return nil, nil
}

func (a *Accounts) CreateDriver(_ context.Context, d *models.Driver) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, existing := range a.drivers {
		if sameEmail(existing.Email, d.Email) {
			return models.ErrDuplicate
		}
	}
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	a.drivers[d.ID] = *d
	return nil
}

func (a *Accounts) GetDriver(_ context.Context, id primitive.ObjectID) (*models.Driver, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, ok := a.drivers[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (a *Accounts) FindDriverByEmail(_ context.Context, email string) (*models.Driver, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, d := range a.drivers {
		if sameEmail(d.Email, email) {
			return &d, nil
		}
	}
	return nil, nil
}

func (a *Accounts) SetDriverActive(_ context.Context, id primitive.ObjectID, active bool) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, ok := a.drivers[id]
	if !ok {
		return false, nil
	}
	d.IsActive = active
	a.drivers[id] = d
	return true, nil
}
