package vector

import (
	"encoding/binary"
	"math"
)

// Reserved hash field names. Metadata must not collide with these. The
// vector field must be named "vector": FT.SEARCH yields the KNN distance as
// "__<field>_score", and the driver parses "__vector_score".
const (
	fieldOwner   = "owner"
	fieldContent = "__content"
	fieldVector  = "vector"
	fieldScore   = "__vector_score"
)

// returnFields is what KNN queries project back; the embedding itself stays
// on the server. With RETURN present the distance field must be projected
// explicitly or every hit comes back scoreless.
var returnFields = []string{fieldOwner, "company", "position", "url", fieldScore}

// buildHashFields assembles the stored hash for one vector record. Metadata
// keys that collide with reserved fields are dropped.
func buildHashFields(owner, text string, vector []float32, metadata map[string]string) map[string]string {
	fields := make(map[string]string, len(metadata)+3)
	for k, v := range metadata {
		switch k {
		case fieldOwner, fieldContent, fieldVector, fieldScore:
			continue
		}
		fields[k] = v
	}
	fields[fieldOwner] = owner
	fields[fieldContent] = text
	fields[fieldVector] = string(vectorToBytes(vector))
	return fields
}

// metadataFields strips reserved fields from a search hit, leaving only the
// caller-supplied metadata bag.
func metadataFields(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch k {
		case fieldContent, fieldVector, fieldScore:
			continue
		}
		out[k] = v
	}
	return out
}

// vectorToBytes encodes a float32 slice as little-endian bytes, the layout
// FT.SEARCH expects for FLOAT32 vector fields.
func vectorToBytes(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, f := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
