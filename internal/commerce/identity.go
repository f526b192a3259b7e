package commerce

import "github.com/google/uuid"

// ComputeRoot derives a deterministic UUID v5 from a domain and business key.
//
// The UUID is derived from hash("bestbuy2" + domain + key) in the OID
// namespace, so the same product name always yields the same identity.
func ComputeRoot(domain, key string) uuid.UUID {
	seed := "bestbuy2" + domain + key
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed))
}

// ProductRoot computes the identity of a product from its name.
func ProductRoot(name string) uuid.UUID {
	return ComputeRoot("product", name)
}

// NewOrderID returns a random identity for a committed order.
func NewOrderID() uuid.UUID {
	return uuid.New()
}
