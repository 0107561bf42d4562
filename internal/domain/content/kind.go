package content

import "strings"

// Kind is the content type of an index entry.
type Kind string

// Content kinds.
const (
	KindServer     Kind = "SERVER"
	KindResource   Kind = "RESOURCE"
	KindWiki       Kind = "WIKI"
	KindPost       Kind = "POST"
	KindCollection Kind = "COLLECTION"
)

// ParseKind normalizes s into a Kind. The second value is false for unknown kinds.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	switch k {
	case KindServer, KindResource, KindWiki, KindPost, KindCollection:
		return k, true
	}
	return "", false
}

// Ref is the reference from an index entry to the content it describes.
// Exactly one variant exists per kind; the interface is sealed.
type Ref interface {
	Kind() Kind
	// TargetID returns the identifier of the owning content entity.
	TargetID() string
	isRef()
}

// ServerRef points to a server listing.
type ServerRef struct{ ServerID string }

// ResourceRef points to a downloadable resource.
type ResourceRef struct{ ResourceID string }

// WikiRef points to a wiki document.
type WikiRef struct{ WikiID string }

// PostRef points to a forum post.
type PostRef struct{ PostID string }

// CollectionRef points to a curated collection.
type CollectionRef struct{ CollectionID string }

func (ServerRef) Kind() Kind     { return KindServer }
func (ResourceRef) Kind() Kind   { return KindResource }
func (WikiRef) Kind() Kind       { return KindWiki }
func (PostRef) Kind() Kind       { return KindPost }
func (CollectionRef) Kind() Kind { return KindCollection }

func (r ServerRef) TargetID() string     { return r.ServerID }
func (r ResourceRef) TargetID() string   { return r.ResourceID }
func (r WikiRef) TargetID() string       { return r.WikiID }
func (r PostRef) TargetID() string       { return r.PostID }
func (r CollectionRef) TargetID() string { return r.CollectionID }

func (ServerRef) isRef()     {}
func (ResourceRef) isRef()   {}
func (WikiRef) isRef()       {}
func (PostRef) isRef()       {}
func (CollectionRef) isRef() {}

// NewRef builds the Ref variant for kind. It fails for unknown kinds and
// blank target IDs.
func NewRef(kind Kind, targetID string) (Ref, bool) {
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return nil, false
	}
	switch kind {
	case KindServer:
		return ServerRef{ServerID: targetID}, true
	case KindResource:
		return ResourceRef{ResourceID: targetID}, true
	case KindWiki:
		return WikiRef{WikiID: targetID}, true
	case KindPost:
		return PostRef{PostID: targetID}, true
	case KindCollection:
		return CollectionRef{CollectionID: targetID}, true
	}
	return nil, false
}
