// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package identity

import (
	"crypto/x509"
	"fmt"

	"github.com/spiffe/go-spiffe/v2/spiffeid"
	"github.com/spiffe/go-spiffe/v2/svid/x509svid"
)

// AuthenticationSPIFFE is the authentication type of identities built from
// SPIFFE IDs.
const AuthenticationSPIFFE = "spiffe"

// FromSPIFFEID builds an authenticated identity for a workload. The full ID
// is both the spiffe_id and the name claim; the trust domain becomes the
// issuer of every claim.
func FromSPIFFEID(id spiffeid.ID) (*ClaimsIdentity, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("identity: empty SPIFFE ID")
	}

	issuer := id.TrustDomain().Name()
	return NewClaimsIdentity(AuthenticationSPIFFE,
		Claim{Type: ClaimSPIFFEID, Value: id.String(), Issuer: issuer},
		Claim{Type: ClaimTrustDomain, Value: issuer, Issuer: issuer},
		Claim{Type: ClaimName, Value: id.String(), Issuer: issuer},
		Claim{Type: ClaimNameIdentifier, Value: id.Path(), Issuer: issuer},
	), nil
}

// FromSVID builds an identity from the SPIFFE ID in a peer's X.509-SVID
// leaf certificate. The certificate must already be verified.
func FromSVID(cert *x509.Certificate) (*ClaimsIdentity, error) {
	if cert == nil {
		return nil, fmt.Errorf("identity: certificate is nil")
	}
	id, err := x509svid.IDFromCert(cert)
	if err != nil {
		return nil, fmt.Errorf("identity: extract SPIFFE ID: %w", err)
	}
	return FromSPIFFEID(id)
}
