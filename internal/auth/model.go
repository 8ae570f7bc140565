package auth

import "time"

// Owner is the authenticated shop-owner account. Mobile number is the
// login identity; everything else is profile detail.
type Owner struct {
	ID        int64     `json:"id"`
	Mobile    string    `json:"mobile_number"`
	Name      *string   `json:"name,omitempty"`
	ShopName  *string   `json:"shop_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
