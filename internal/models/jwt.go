package models

// JWTClaims represents the structure of the JWT token claims issued by the
// identity provider. Validation happens at the gateway; this app only reads
// identity and roles.
type JWTClaims struct {
	JTI         string   `json:"jti"`
	Exp         int64    `json:"exp"`
	IAT         int64    `json:"iat"`
	ISS         string   `json:"iss"`
	AUD         []string `json:"aud"`
	Sub         string   `json:"sub"`
	RealmAccess struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
	Scope             string `json:"scope"`
	EmailVerified     bool   `json:"email_verified"`
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email"`
}
