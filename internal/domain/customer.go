package domain

// GuestCustomerID is used on orders submitted without an authenticated
// customer.
const GuestCustomerID = "GUEST"

type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}
