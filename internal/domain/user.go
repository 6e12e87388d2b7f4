package domain

// User is the domain entity behind the /users resource.
// Password is kept as given; nothing in this service hashes it.
type User struct {
	ID       int64
	Name     string
	Email    string
	Password string
}
