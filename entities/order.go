package entities

type Order struct {
	ID          string `json:"id"`
	OwnerID     string `json:"ownerId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

type NewOrder struct {
	OwnerID     string
	ProductName string
	Quantity    int
}

// OrderUpdate carries the fields of a partial update. Nil fields are left
// untouched.
type OrderUpdate struct {
	ProductName *string
	Quantity    *int
}
