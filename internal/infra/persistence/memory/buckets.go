package memory

import (
	"encoding/json"
	"fmt"
)

// Buckets names the snapshot collections persisted by the durable backends,
// one row per bucket.
var Buckets = []string{
	"networks",
	"centers",
	"families",
	"departments",
	"objectives",
	"ods",
	"roles",
	"permissions",
}

func (s *Snapshot) bucketTarget(bucket string) (any, bool) {
	switch bucket {
	case "networks":
		return &s.Networks, true
	case "centers":
		return &s.Centers, true
	case "families":
		return &s.Families, true
	case "departments":
		return &s.Departments, true
	case "objectives":
		return &s.Objectives, true
	case "ods":
		return &s.ODS, true
	case "roles":
		return &s.Roles, true
	case "permissions":
		return &s.Permissions, true
	}
	return nil, false
}

// EncodeBucket marshals a single snapshot collection.
func (s Snapshot) EncodeBucket(bucket string) ([]byte, error) {
	target, ok := s.bucketTarget(bucket)
	if !ok {
		return nil, fmt.Errorf("unknown bucket %q", bucket)
	}
	data, err := json.Marshal(target)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", bucket, err)
	}
	return data, nil
}

// DecodeBucket unmarshals payload into the named collection. Unknown buckets
// and empty payloads are ignored so older databases keep loading.
func (s *Snapshot) DecodeBucket(bucket string, payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	target, ok := s.bucketTarget(bucket)
	if !ok {
		return nil
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("decode %s: %w", bucket, err)
	}
	return nil
}
