package domain

// Claims are the verified attributes extracted from a signed access token.
// Instances come only out of a successful codec verification or out of
// trusted gateway headers; handlers never build them from request bodies.
type Claims struct {
	UserID         string
	TenantID       string
	OrganizationID string
	Roles          []string
	Permissions    []string
}
