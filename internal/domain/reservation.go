package domain

type Reservation struct {
	ID        int64  `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Rating    *int   `json:"rating"`
	RentalID  int64  `json:"rental_id"`
	Renter    string `json:"renter"`
}
