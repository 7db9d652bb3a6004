package user

// Principal is the identity returned by the backend session endpoint. Login
// itself is delegated to the backend's OAuth redirect; this service only ever
// reads the resolved identity.
type Principal struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}
