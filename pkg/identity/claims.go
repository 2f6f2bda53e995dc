// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package identity models an authenticated caller as a list of typed claims.
package identity

// Well-known claim types.
const (
	ClaimName           = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
	ClaimNameIdentifier = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
	ClaimEmail          = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
	ClaimGivenName      = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/givenname"
	ClaimSurname        = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/surname"
	ClaimRole           = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

	ClaimSPIFFEID    = "spiffe_id"
	ClaimTrustDomain = "trust_domain"
)

// Claim is one statement about an identity.
type Claim struct {
	Type   string `json:"type" yaml:"type"`
	Value  string `json:"value" yaml:"value"`
	Issuer string `json:"issuer,omitempty" yaml:"issuer,omitempty"`
}

// Identity exposes the claims of an authenticated or anonymous caller.
type Identity interface {
	Claims() []Claim
}

// ClaimsIdentity is the default Identity. An empty AuthenticationType marks
// an anonymous identity.
type ClaimsIdentity struct {
	AuthenticationType string
	claims             []Claim
}

// NewClaimsIdentity returns an identity holding a copy of claims.
func NewClaimsIdentity(authenticationType string, claims ...Claim) *ClaimsIdentity {
	id := &ClaimsIdentity{AuthenticationType: authenticationType}
	id.claims = append(id.claims, claims...)
	return id
}

// Claims returns the claims in insertion order.
func (c *ClaimsIdentity) Claims() []Claim {
	if c == nil {
		return nil
	}
	return c.claims
}

// AddClaim appends a claim.
func (c *ClaimsIdentity) AddClaim(claimType, value string) {
	c.claims = append(c.claims, Claim{Type: claimType, Value: value})
}

// FindFirst returns the first claim of claimType.
func (c *ClaimsIdentity) FindFirst(claimType string) (Claim, bool) {
	for _, claim := range c.Claims() {
		if claim.Type == claimType {
			return claim, true
		}
	}
	return Claim{}, false
}

// IsAuthenticated reports whether an authentication type is set.
func (c *ClaimsIdentity) IsAuthenticated() bool {
	return c != nil && c.AuthenticationType != ""
}

// Name returns the value of the first ClaimName claim.
func (c *ClaimsIdentity) Name() string {
	return ClaimValue(c, ClaimName)
}

// ClaimValue returns the value of the first claim in id whose type equals
// claimType exactly, or "" when id is nil or has no such claim.
func ClaimValue(id Identity, claimType string) string {
	if id == nil {
		return ""
	}
	for _, claim := range id.Claims() {
		if claim.Type == claimType {
			return claim.Value
		}
	}
	return ""
}
