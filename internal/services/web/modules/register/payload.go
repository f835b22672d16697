package register

// Payload is the account creation request. Optional fields stay empty when
// the user left them blank and are omitted on the wire.
type Payload struct {
	FirstName     string
	MiddleInitial string
	LastName      string
	Email         string
	UserAlias     string
	Password      string
	Zip           string
	PhoneNum      string
}

// Payload builds the request body from a validated form. The phone number
// is sent as digits only.
func (f Form) Payload() Payload {
	return Payload{
		FirstName:     f.FirstName,
		MiddleInitial: f.MiddleInitial,
		LastName:      f.LastName,
		Email:         f.Email,
		UserAlias:     f.UserAlias,
		Password:      f.Password,
		Zip:           f.Zip,
		PhoneNum:      PhoneDigits(f.PhoneNum),
	}
}
