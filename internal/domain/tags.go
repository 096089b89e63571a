package domain

// OrganizationGUIDTagKey is the ownership tag that must be present on a
// database resource's tag set for the set to be usable. Broker-created
// instances carry it; anything without it is not attributable to a customer.
const OrganizationGUIDTagKey = "Organization GUID"

// TagMap is a resource's tag set. An empty map is a valid lookup result and
// means "no usable tags": records for that resource are dropped, not failed.
type TagMap map[string]string

// Clone returns an independent copy so callers can merge synthesized tags
// without mutating a cached map.
func (t TagMap) Clone() TagMap {
	c := make(TagMap, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// ResourceKind identifies which tag API a resource is looked up against.
type ResourceKind string

const (
	KindRDS ResourceKind = "rds"
	KindS3  ResourceKind = "s3"
	KindES  ResourceKind = "es"
)
