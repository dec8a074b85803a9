package domain

// CreditPackage is a purchasable bundle of credits. Admin-managed catalog
// entity; purchases are simulated (no payment gateway).
type CreditPackage struct {
	ID      string  `bson:"id" json:"id"`
	Name    string  `bson:"name" json:"name"`
	Credits int     `bson:"credits" json:"credits"`
	Price   float64 `bson:"price" json:"price"`
}
