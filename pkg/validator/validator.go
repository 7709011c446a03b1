package validator

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func ValidateSignup(username, password, email string) ValidationErrors {
	errs := make(ValidationErrors)

	validateUsername("username", username, errs)

	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	return errs
}

func ValidateLogin(username, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(username) == "" {
		errs.Add("username", "Username is required")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateMessage(sender, recipient, content string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(sender) == "" {
		errs.Add("sender", "Sender is required")
	}
	if strings.TrimSpace(recipient) == "" {
		errs.Add("recipient", "Recipient is required")
	}
	if content == "" {
		errs.Add("content", "Message content is required")
	}

	return errs
}

func ValidateConversation(user1, user2 string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(user1) == "" {
		errs.Add("user1", "user1 is required")
	}
	if strings.TrimSpace(user2) == "" {
		errs.Add("user2", "user2 is required")
	}
	if user1 != "" && user1 == user2 {
		errs.Add("user2", "Participants must be two different users")
	}

	return errs
}

// ValidateRental checks the rentalData block of an add-rental request.
// Price arrives as a string from the client and must coerce to an integer.
func ValidateRental(description, location, price string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(description) == "" {
		errs.Add("description", "Description is required")
	}

	location = strings.TrimSpace(location)
	if location == "" {
		errs.Add("location", "Location is required")
	} else if len(location) > 100 {
		errs.Add("location", "Location is too long")
	}

	if strings.TrimSpace(price) == "" {
		errs.Add("price", "Price is required")
	} else if n, err := strconv.Atoi(price); err != nil || n < 0 {
		errs.Add("price", "Price must be a non-negative integer")
	}

	return errs
}

func ValidateReservation(startDate, endDate string, rentalID int64) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(startDate) == "" {
		errs.Add("start_date", "Start date is required")
	}
	if strings.TrimSpace(endDate) == "" {
		errs.Add("end_date", "End date is required")
	}
	if rentalID <= 0 {
		errs.Add("rental_id", "rental_id is required")
	}

	return errs
}

func validateUsername(field, username string, errs ValidationErrors) {
	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add(field, "Username is required")
	} else if len(username) > 50 {
		errs.Add(field, "Username is too long")
	} else if !usernameRegex.MatchString(username) {
		errs.Add(field, "Username can only contain letters, numbers, _ and -")
	}
}
