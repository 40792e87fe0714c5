package user

// User is the identity every other record is owned by. Authentication happens
// outside this service; the middleware only resolves an already-established
// identity into the request context.
type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
}
