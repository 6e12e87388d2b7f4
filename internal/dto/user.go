package dto

// UserFields is the plain wire form of a user: the model fields only.
type UserFields struct {
	Name     string `json:"name" example:"Ada Lovelace"`
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"secret"`
}

// UserRequest documents the JSON body for POST/PUT/PATCH /users/.
// Handlers do not bind into it: the serializer reads the raw object so it can
// tell a missing key from null or an empty string.
type UserRequest struct {
	Name     string `json:"name" maxLength:"200"`
	Email    string `json:"email" maxLength:"200"`
	Password string `json:"password" maxLength:"200"`
}

// UserResponse is the hyperlinked representation returned by every /users/ route.
type UserResponse struct {
	URL string `json:"url" example:"http://localhost:8080/users/1/"`
	UserFields
}

// HelloResponse is the fixed greeting body.
type HelloResponse struct {
	Hello string `json:"hello" example:"world"`
}

// APIRootResponse lists the resource collections served under /.
type APIRootResponse struct {
	Users string `json:"users" example:"http://localhost:8080/users/"`
}

// ErrorResponse carries non-field errors (404, 405, malformed JSON, 500).
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FieldErrors maps a field name to its validation messages.
type FieldErrors map[string][]string
