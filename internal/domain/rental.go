package domain

type Rental struct {
	ID            int64   `json:"id"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	Price         int     `json:"price"`
	URL           *string `json:"url"`
	OwnerUsername string  `json:"owner_username"`
}

type Rating struct {
	ID       int64 `json:"id"`
	Rating   int   `json:"rating"`
	RentalID int64 `json:"rental_id"`
}
