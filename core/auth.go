package core

import "errors"

// Principal is the identity resolved from a verified bearer token,
// attached to the request context by AuthRequired.
type Principal struct {
	ID    string // user document id (hex)
	Token string // raw credential as presented by the client
}

var (
	// ErrMissingFields is returned when a required signup/login field is absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrDuplicateEmail is returned when signing up with an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUnknownEmail is returned when logging in with an unregistered email.
	ErrUnknownEmail = errors.New("no account for email")
	// ErrPasswordMismatch is returned when the supplied password does not match the stored hash.
	ErrPasswordMismatch = errors.New("password mismatch")
)

// Client-facing messages, kept byte-for-byte compatible with the service
// this API replaces.
const (
	msgNoAuthHeader    = "Cabecera de autenticación tipo Bearer no encontrada [Authorization: Bearer jwtToken]"
	msgNoBearerToken   = "Token de acceso JWT no encontrado dentro de la cabecera [Authorization: Bearer jwtToken]"
	msgTokenExpired    = "El token ha expirado"
	msgTokenInvalid    = "El token no es válido"
	msgSignupMissing   = "Faltan datos obligatorios, datos : name, email, password"
	msgLoginMissing    = "Faltan datos obligatorios, datos : email, password"
	msgDuplicateEmail  = "Ya existe un usuario con ese email"
	msgUnknownEmail    = "No existe ese correo"
	msgWrongPassword   = "Contraseña no coincide"
	msgServerError     = "Error servidor"
	msgTooManyAttempts = "Demasiados intentos de acceso, prueba más tarde"
	msgUserNotFound    = "No existe ese usuario"
	msgInvalidBody     = "Petición no válida"
)
