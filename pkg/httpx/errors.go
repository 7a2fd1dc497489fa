package httpx

import "net/http"

// FieldErrors accumulates validation messages keyed by input field, in the
// shape clients expect: {"errors": {"email": ["is taken"]}}.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// HasErrors reports whether any message has been recorded.
func (fe FieldErrors) HasErrors() bool { return len(fe) > 0 }

// ValidationBody is the wire shape of a 422 response.
type ValidationBody struct {
	Errors FieldErrors `json:"errors"`
}

// WriteValidation writes a 422 with the accumulated field errors.
func WriteValidation(w http.ResponseWriter, fe FieldErrors) {
	WriteJSON(w, http.StatusUnprocessableEntity, ValidationBody{Errors: fe})
}

// WriteFieldError writes a 422 with a single field message.
func WriteFieldError(w http.ResponseWriter, field, msg string) {
	fe := FieldErrors{}
	fe.Add(field, msg)
	WriteValidation(w, fe)
}

// WriteUnauthorized writes a 401 challenge for token auth.
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Token")
	w.WriteHeader(http.StatusUnauthorized)
}

// WriteForbidden writes a bare 403.
func WriteForbidden(w http.ResponseWriter) {
	w.WriteHeader(http.StatusForbidden)
}

// WriteNotFound writes a bare 404.
func WriteNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}

// WriteInternal writes an opaque 500. The cause must be logged by the
// caller, never surfaced to the client.
func WriteInternal(w http.ResponseWriter) {
	w.WriteHeader(http.StatusInternalServerError)
}
