package format

import (
	"errors"
	"math/big"
	"strings"
)

var errBadOID = errors.New("malformed object identifier")

// oidNames covers identifiers common in certificates and keys.
var oidNames = map[string]string{
	"1.2.840.113549.1.1.1":   "rsaEncryption",
	"1.2.840.113549.1.1.5":   "sha1WithRSAEncryption",
	"1.2.840.113549.1.1.10":  "rsassa-pss",
	"1.2.840.113549.1.1.11":  "sha256WithRSAEncryption",
	"1.2.840.113549.1.1.12":  "sha384WithRSAEncryption",
	"1.2.840.113549.1.1.13":  "sha512WithRSAEncryption",
	"1.2.840.113549.1.7.1":   "data",
	"1.2.840.113549.1.7.2":   "signedData",
	"1.2.840.113549.1.9.1":   "emailAddress",
	"1.2.840.113549.1.9.14":  "extensionRequest",
	"1.2.840.10045.2.1":      "ecPublicKey",
	"1.2.840.10045.3.1.7":    "prime256v1",
	"1.2.840.10045.4.3.2":    "ecdsa-with-SHA256",
	"1.2.840.10045.4.3.3":    "ecdsa-with-SHA384",
	"1.2.840.10045.4.3.4":    "ecdsa-with-SHA512",
	"1.3.101.110":            "X25519",
	"1.3.101.112":            "Ed25519",
	"1.3.132.0.34":           "secp384r1",
	"1.3.132.0.35":           "secp521r1",
	"1.3.6.1.5.5.7.1.1":      "authorityInfoAccess",
	"1.3.6.1.5.5.7.3.1":      "serverAuth",
	"1.3.6.1.5.5.7.3.2":      "clientAuth",
	"1.3.6.1.5.5.7.48.1":     "ocsp",
	"1.3.6.1.5.5.7.48.2":     "caIssuers",
	"2.16.840.1.101.3.4.2.1": "sha256",
	"2.16.840.1.101.3.4.2.2": "sha384",
	"2.16.840.1.101.3.4.2.3": "sha512",
	"2.5.4.3":                "commonName",
	"2.5.4.5":                "serialNumber",
	"2.5.4.6":                "countryName",
	"2.5.4.7":                "localityName",
	"2.5.4.8":                "stateOrProvinceName",
	"2.5.4.10":               "organizationName",
	"2.5.4.11":               "organizationalUnitName",
	"2.5.29.14":              "subjectKeyIdentifier",
	"2.5.29.15":              "keyUsage",
	"2.5.29.17":              "subjectAltName",
	"2.5.29.19":              "basicConstraints",
	"2.5.29.31":              "cRLDistributionPoints",
	"2.5.29.32":              "certificatePolicies",
	"2.5.29.35":              "authorityKeyIdentifier",
	"2.5.29.37":              "extKeyUsage",
}

// OIDName returns the well-known name of a dotted OID, if any.
func OIDName(dotted string) (string, bool) {
	name, ok := oidNames[dotted]
	return name, ok
}

// DecodeOID renders the content octets of an OBJECT IDENTIFIER in dotted
// form. Arcs of any size are supported.
func DecodeOID(b []byte) (string, error) {
	arcs, err := subidentifiers(b)
	if err != nil {
		return "", err
	}

	first := arcs[0]
	var root int64
	switch {
	case first.Cmp(big.NewInt(40)) < 0:
		root = 0
	case first.Cmp(big.NewInt(80)) < 0:
		root = 1
	default:
		root = 2
	}
	first.Sub(first, big.NewInt(40*root))

	parts := make([]string, 0, len(arcs)+1)
	parts = append(parts, big.NewInt(root).String())
	for _, a := range arcs {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, "."), nil
}

// DecodeRelativeOID renders a RELATIVE-OID, which has no combined first arc.
func DecodeRelativeOID(b []byte) (string, error) {
	arcs, err := subidentifiers(b)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(arcs))
	for i, a := range arcs {
		parts[i] = a.String()
	}
	return strings.Join(parts, "."), nil
}

func subidentifiers(b []byte) ([]*big.Int, error) {
	if len(b) == 0 {
		return nil, errBadOID
	}
	var arcs []*big.Int
	cur := new(big.Int)
	start := true
	for _, c := range b {
		if start && c == 0x80 {
			// Non-minimal base-128 encoding.
			return nil, errBadOID
		}
		start = false
		cur.Lsh(cur, 7)
		cur.Or(cur, big.NewInt(int64(c&0x7F)))
		if c&0x80 == 0 {
			arcs = append(arcs, cur)
			cur = new(big.Int)
			start = true
		}
	}
	if !start {
		return nil, errBadOID
	}
	return arcs, nil
}
