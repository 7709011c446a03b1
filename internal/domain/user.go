package domain

type User struct {
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	ImageURL     *string `json:"image_url"`
	Bio          *string `json:"bio"`
	Location     *string `json:"location"`
	PasswordHash string  `json:"-"`
}
